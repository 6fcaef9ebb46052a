package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/util"
)

// Fetcher retrieves the RRSIG records covering the DNSKEY set of a zone
type Fetcher struct {
	cfg    config.Audit
	client *dnsClient
}

// NewFetcher creates a new fetcher with the passed audit configuration
func NewFetcher(cfg config.Audit) *Fetcher {
	bufSize := cfg.EDNSBufferSize
	if bufSize < config.MinEDNSBufferSize {
		bufSize = config.MinEDNSBufferSize
	}

	cfg.EDNSBufferSize = bufSize

	return &Fetcher{
		cfg:    cfg,
		client: newDNSClient(cfg.Transport, bufSize),
	}
}

// Fetch queries the DNSKEY set of zone at target and returns the signatures covering it in response order.
// A failure is returned as QueryError and only concerns this zone.
func (f *Fetcher) Fetch(ctx context.Context, target *model.NameserverTarget, zone string) ([]model.SignatureRecord, error) {
	zone = util.NormalizeZone(zone)
	logger := log.FromCtxWithPrefix(ctx, "fetcher").WithField("zone", zone)

	msg := util.NewMsgWithQuestion(zone, dns.Type(dns.TypeDNSKEY))
	msg.RecursionDesired = f.cfg.RecursionDesired
	msg.SetEdns0(f.cfg.EDNSBufferSize, true)

	var resp *dns.Msg

	err := retry.Do(
		func() error {
			var err error

			resp, err = f.exchangeOnce(ctx, logger, msg, target.Addr())

			return err
		},
		retry.Attempts(f.cfg.Retries+1),
		retry.RetryIf(isTemporary),
		retry.Delay(0),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			if n < f.cfg.Retries {
				logger.WithField("attempt", n+1).Debugf("temporary network error / timeout occurred, retrying: %s", err)
			}
		}),
	)
	if err != nil {
		return nil, f.queryError(zone, target, classifyErr(err), err)
	}

	if resp.Rcode != dns.RcodeSuccess {
		return nil, f.queryError(zone, target, QueryFailureRcode,
			fmt.Errorf("nameserver returned %s", dns.RcodeToString[resp.Rcode]))
	}

	sigs := util.CoveringRRSIGs(resp.Answer, zone, dns.TypeDNSKEY)
	if len(sigs) == 0 {
		return nil, f.queryError(zone, target, QueryFailureUnsigned,
			errors.New("no RRSIG covering DNSKEY in answer, is DNSSEC enabled?"))
	}

	res := make([]model.SignatureRecord, 0, len(sigs))

	for _, sig := range sigs {
		res = append(res, model.SignatureRecord{
			Zone:       zone,
			KeyTag:     sig.KeyTag,
			Algorithm:  sig.Algorithm,
			SignerName: sig.SignerName,
			Inception:  util.SigTime(sig.Inception),
			Expiration: util.SigTime(sig.Expiration),
		})
	}

	logger.WithField("signatures", len(res)).Debug("received signatures")

	return res, nil
}

func (f *Fetcher) exchangeOnce(ctx context.Context, logger *logrus.Entry, msg *dns.Msg, addr string) (*dns.Msg, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout.ToDuration())
	defer cancel()

	start := time.Now()

	resp, _, err := f.client.exchange(ctx, logger, msg.Copy(), addr)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"return_code":      dns.RcodeToString[resp.Rcode],
		"response_time_ms": time.Since(start).Milliseconds(),
	}).Debug("received response from nameserver")

	return resp, nil
}

func (f *Fetcher) queryError(zone string, target *model.NameserverTarget, reason QueryFailure, err error) *QueryError {
	return &QueryError{
		Zone:       zone,
		Nameserver: target.String(),
		Reason:     reason,
		Err:        err,
	}
}

func classifyErr(err error) QueryFailure {
	if isTemporary(err) {
		return QueryFailureTimeout
	}

	var dnsErr *dns.Error
	if errors.As(err, &dnsErr) {
		return QueryFailureMalformed
	}

	return QueryFailureTransport
}
