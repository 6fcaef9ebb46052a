package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/evt"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/resolver"
	"github.com/0xERR0R/sigwatch/util"
)

type nameserverResolver interface {
	Resolve(ctx context.Context, ns config.Nameserver) (*model.NameserverTarget, error)
}

type signatureFetcher interface {
	Fetch(ctx context.Context, target *model.NameserverTarget, zone string) ([]model.SignatureRecord, error)
}

// Option configures an Auditor
type Option func(a *Auditor)

// WithClock replaces the clock used to determine signature ages
func WithClock(clock model.Clock) Option {
	return func(a *Auditor) {
		a.clock = clock
	}
}

// Auditor checks the signature freshness of a list of zones at one nameserver
type Auditor struct {
	cfg      *config.Config
	resolver nameserverResolver
	fetcher  signatureFetcher
	clock    model.Clock
}

// NewAuditor creates a new auditor for the passed configuration
func NewAuditor(cfg *config.Config, opts ...Option) *Auditor {
	a := &Auditor{
		cfg:      cfg,
		resolver: resolver.NewNameserverResolver(cfg),
		fetcher:  resolver.NewFetcher(cfg.Audit),
		clock:    model.SystemClock{},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

type zoneResult struct {
	idx      int
	zone     string
	sigs     []model.SignatureRecord
	err      error
	duration time.Duration
}

// Run checks all zones and returns the aggregated result.
// Only a ConfigurationError or a ResolutionError abort the run, failing zones are reported as unreachable.
func (a *Auditor) Run(ctx context.Context, zones []string) (*model.AuditResult, error) {
	if err := a.validate(zones); err != nil {
		return nil, err
	}

	runID := uuid.NewString()

	ctx, logger := log.CtxWithFields(ctx, logrus.Fields{"prefix": "audit", "run_id": runID})

	target, err := a.resolver.Resolve(ctx, a.cfg.Nameserver)
	if err != nil {
		return nil, err
	}

	if a.cfg.Audit.Deadline.IsAboveZero() {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.cfg.Audit.Deadline.ToDuration())
		defer cancel()
	}

	threshold := a.cfg.Audit.Threshold()
	now := a.clock.Now()
	agg := NewAggregator(threshold, logger)

	logger.WithField("nameserver", target).Infof("checking %d zone(s)", len(zones))
	evt.Bus().Publish(evt.AuditStarted, runID, len(zones))

	for res := range a.checkAll(ctx, target, zones) {
		if res.err != nil {
			logger.WithField("zone", res.zone).Warn(res.err)

			agg.AddUnreachable(res.zone, target.Host, res.err)
			evt.Bus().Publish(evt.AuditZoneUnreachable, res.zone, failureReason(res.err), res.duration)

			continue
		}

		classified := make([]model.ClassifiedSignature, 0, len(res.sigs))

		for _, sig := range res.sigs {
			c := Evaluate(sig, now, threshold, target.Host)

			if c.ClockAnomaly {
				logger.WithFields(logrus.Fields{"zone": res.zone, "key_tag": c.KeyTag}).
					Warnf("signature inception %s is in the future, check the clock of this host or the signer",
						c.Inception.Format(time.RFC3339))
			}

			classified = append(classified, c)
		}

		agg.AddZone(res.zone, classified)
		evt.Bus().Publish(evt.AuditZoneChecked, res.zone, classified, res.duration)
	}

	result := agg.Result()
	result.RunID = runID
	result.Nameserver = target.String()
	result.CheckedAt = now

	logger.WithFields(logrus.Fields{
		"verdict":     result.Verdict,
		"stale":       result.StaleCount(),
		"fresh":       result.FreshCount(),
		"unreachable": result.UnreachableCount(),
	}).Info("audit completed")

	evt.Bus().Publish(evt.AuditCompleted, result)

	return result, nil
}

func (a *Auditor) validate(zones []string) error {
	if len(zones) == 0 {
		return config.NewConfigurationError("no zones to check")
	}

	return a.cfg.Audit.Validate()
}

// checkAll queries the zones with a bounded number of workers.
// The returned channel delivers the results in the order of zones.
func (a *Auditor) checkAll(ctx context.Context, target *model.NameserverTarget, zones []string) <-chan zoneResult {
	workers := a.cfg.Audit.Concurrency
	if workers < 1 {
		workers = 1
	}

	if workers > len(zones) {
		workers = len(zones)
	}

	jobs := make(chan int)
	results := make(chan zoneResult, workers)
	ordered := make(chan zoneResult, workers)

	go func() {
		defer close(jobs)

		for i := range zones {
			jobs <- i
		}
	}()

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for idx := range jobs {
				results <- a.checkZone(ctx, target, idx, zones[idx])
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// reorder, so the aggregation doesn't depend on worker scheduling
	go func() {
		defer close(ordered)

		pending := make(map[int]zoneResult)
		next := 0

		for res := range results {
			pending[res.idx] = res

			for {
				r, ok := pending[next]
				if !ok {
					break
				}

				delete(pending, next)
				ordered <- r
				next++
			}
		}
	}()

	return ordered
}

func (a *Auditor) checkZone(ctx context.Context, target *model.NameserverTarget, idx int, zone string) zoneResult {
	start := time.Now()

	name := util.NormalizeZone(zone)
	if !util.IsValidZone(name) {
		return zoneResult{
			idx:  idx,
			zone: zone,
			err: &resolver.QueryError{
				Zone:       zone,
				Nameserver: target.String(),
				Reason:     resolver.QueryFailureMalformed,
				Err:        fmt.Errorf("invalid zone name '%s'", log.EscapeInput(zone)),
			},
		}
	}

	sigs, err := a.fetcher.Fetch(ctx, target, name)

	return zoneResult{idx: idx, zone: name, sigs: sigs, err: err, duration: time.Since(start)}
}

func failureReason(err error) string {
	var qErr *resolver.QueryError
	if errors.As(err, &qErr) {
		return qErr.Reason.String()
	}

	return resolver.QueryFailureTransport.String()
}
