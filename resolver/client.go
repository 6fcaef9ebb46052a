package resolver

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/config"
)

// exchanger sends a DNS message and waits for the response
type exchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, address string) (r *dns.Msg, rtt time.Duration, err error)
}

type dnsClient struct {
	udpClient, tcpClient exchanger
	transport            config.Transport
}

func newDNSClient(transport config.Transport, ednsBufferSize uint16) *dnsClient {
	return &dnsClient{
		udpClient: &dns.Client{
			Net:     "udp",
			UDPSize: ednsBufferSize,
		},
		tcpClient: &dns.Client{
			Net: "tcp",
		},
		transport: transport,
	}
}

// exchange sends msg over UDP and repeats it over TCP if the response was truncated.
// With TCP transport, UDP is not used at all.
func (c *dnsClient) exchange(
	ctx context.Context, logger *logrus.Entry, msg *dns.Msg, address string,
) (*dns.Msg, time.Duration, error) {
	if c.transport == config.TransportTcp {
		return c.tcpClient.ExchangeContext(ctx, msg, address)
	}

	response, rtt, err := c.udpClient.ExchangeContext(ctx, msg, address)
	if err != nil {
		return nil, rtt, err
	}

	if !response.Truncated {
		return response, rtt, nil
	}

	logger.WithField("rtt_ms", rtt.Milliseconds()).Debug("response truncated, retrying over TCP")

	return c.tcpClient.ExchangeContext(ctx, msg, address)
}

// isTemporary returns true for timeouts and temporary network errors worth a retry
func isTemporary(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
