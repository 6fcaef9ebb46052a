package resolver

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/util"
)

const defaultLookupTimeout = 5 * time.Second

// NameserverResolver determines the address of the nameserver all zones are queried against.
// Host names are resolved with the system resolver, or the bootstrap DNS if configured.
type NameserverResolver struct {
	ipVersion     config.IPVersion
	bootstrap     config.Nameserver
	lookupTimeout time.Duration

	client         exchanger
	systemResolver *net.Resolver
}

// NewNameserverResolver creates a new resolver for the configured IP version and bootstrap DNS
func NewNameserverResolver(cfg *config.Config) *NameserverResolver {
	timeout := cfg.Audit.Timeout.ToDuration()
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	return &NameserverResolver{
		ipVersion:      cfg.IPVersion,
		bootstrap:      cfg.BootstrapDNS,
		lookupTimeout:  timeout,
		client:         &dns.Client{Net: "udp"},
		systemResolver: net.DefaultResolver, // allow replacing it during tests
	}
}

// Resolve returns the address of ns. A failure is returned as ResolutionError.
func (r *NameserverResolver) Resolve(ctx context.Context, ns config.Nameserver) (*model.NameserverTarget, error) {
	logger := log.FromCtxWithPrefix(ctx, "nameserver_resolver").WithField("nameserver", ns.Host)

	if ns.Host == "" {
		return nil, &ResolutionError{Host: ns.Host, Err: fmt.Errorf("nameserver is empty")}
	}

	if ip := net.ParseIP(ns.Host); ip != nil {
		return &model.NameserverTarget{Host: ns.Host, Port: ns.Port, IP: ip}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	var (
		ips []net.IP
		err error
	)

	if r.bootstrap.IsDefault() {
		ips, err = r.systemResolver.LookupIP(ctx, r.ipVersion.Net(), ns.Host)
	} else {
		ips, err = r.lookupWithBootstrap(ctx, logger, ns.Host)
	}

	if err != nil {
		return nil, &ResolutionError{Host: ns.Host, Err: err}
	}

	ip := preferIPv4(ips)
	if ip == nil {
		return nil, &ResolutionError{Host: ns.Host, Err: fmt.Errorf("no %s address found", r.ipVersion)}
	}

	logger.WithField("ip", ip).Debug("resolved nameserver")

	return &model.NameserverTarget{Host: ns.Host, Port: ns.Port, IP: ip}, nil
}

func (r *NameserverResolver) lookupWithBootstrap(
	ctx context.Context, logger *logrus.Entry, host string,
) (ips []net.IP, err error) {
	bootstrapAddr := net.JoinHostPort(r.bootstrap.Host, fmt.Sprint(r.bootstrap.Port))

	for _, qType := range r.ipVersion.QTypes() {
		qIPs, qErr := r.lookupType(ctx, bootstrapAddr, host, qType)
		if qErr != nil {
			logger.WithField("qtype", qType).Debugf("bootstrap lookup failed: %s", qErr)

			err = multierror.Append(err, qErr)

			continue
		}

		ips = append(ips, qIPs...)
	}

	if len(ips) > 0 {
		return ips, nil
	}

	if err == nil {
		err = fmt.Errorf("no such host %s", host)
	}

	return nil, err
}

func (r *NameserverResolver) lookupType(
	ctx context.Context, bootstrapAddr, host string, qType dns.Type,
) ([]net.IP, error) {
	msg := util.NewMsgWithQuestion(host, qType)
	msg.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, msg, bootstrapAddr)
	if err != nil {
		return nil, fmt.Errorf("%s lookup via %s failed: %w", qType, bootstrapAddr, err)
	}

	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%s lookup via %s failed: %s", qType, bootstrapAddr, dns.RcodeToString[resp.Rcode])
	}

	var ips []net.IP

	for _, answer := range resp.Answer {
		switch v := answer.(type) {
		case *dns.A:
			ips = append(ips, v.A)
		case *dns.AAAA:
			ips = append(ips, v.AAAA)
		}
	}

	return ips, nil
}

func preferIPv4(ips []net.IP) net.IP {
	var first net.IP

	for _, ip := range ips {
		if ip.To4() != nil {
			return ip
		}

		if first == nil {
			first = ip
		}
	}

	return first
}
