package audit

import (
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/model"
)

type zoneState struct {
	signatures  []model.ClassifiedSignature
	succeeded   bool
	unreachable *model.UnreachableZone
}

// Aggregator partitions the checked zones into stale, fresh and unreachable ones.
// It must be fed by a single goroutine.
type Aggregator struct {
	thresholdDays int
	logger        *logrus.Entry

	order []string
	zones map[string]*zoneState
}

// NewAggregator creates an empty aggregator
func NewAggregator(thresholdDays int, logger *logrus.Entry) *Aggregator {
	return &Aggregator{
		thresholdDays: thresholdDays,
		logger:        logger,
		zones:         make(map[string]*zoneState),
	}
}

func (a *Aggregator) state(zone string) *zoneState {
	s, ok := a.zones[zone]
	if !ok {
		s = &zoneState{}
		a.zones[zone] = s
		a.order = append(a.order, zone)
	}

	return s
}

// AddZone adds the classified signatures of a successfully queried zone.
// If the zone was already added, the first result is kept.
func (a *Aggregator) AddZone(zone string, sigs []model.ClassifiedSignature) {
	s := a.state(zone)
	if s.succeeded {
		a.logger.WithField("zone", zone).Debug("zone was already checked, ignoring duplicate")

		return
	}

	s.succeeded = true
	s.unreachable = nil

	seen := make(map[uint16]struct{}, len(sigs))

	for _, sig := range sigs {
		if _, ok := seen[sig.KeyTag]; ok {
			a.logger.WithField("zone", zone).Warnf("duplicate signature for key tag %d, keeping the first one", sig.KeyTag)

			continue
		}

		seen[sig.KeyTag] = struct{}{}

		s.signatures = append(s.signatures, sig)
	}
}

// AddUnreachable records a zone whose signatures could not be retrieved.
// It is ignored if the zone was already queried successfully. A nil err is reported as unknown error.
func (a *Aggregator) AddUnreachable(zone, nameserver string, err error) {
	s := a.state(zone)
	if s.succeeded || s.unreachable != nil {
		return
	}

	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}

	s.unreachable = &model.UnreachableZone{
		Zone:       zone,
		Nameserver: nameserver,
		Error:      reason,
	}
}

// Result builds the audit result with zones in order of their first appearance
func (a *Aggregator) Result() *model.AuditResult {
	res := &model.AuditResult{
		ThresholdDays:    a.thresholdDays,
		StaleZones:       []model.ZoneReport{},
		FreshZones:       []model.ZoneReport{},
		UnreachableZones: []model.UnreachableZone{},
		Verdict:          model.VerdictOK,
	}

	for _, zone := range a.order {
		s := a.zones[zone]

		if !s.succeeded {
			res.UnreachableZones = append(res.UnreachableZones, *s.unreachable)

			continue
		}

		res.Total++

		report := model.ZoneReport{Zone: zone, Signatures: s.signatures}

		if report.Stale() {
			res.StaleZones = append(res.StaleZones, report)
		} else {
			res.FreshZones = append(res.FreshZones, report)
		}
	}

	if len(res.StaleZones) > 0 {
		res.Verdict = model.VerdictCRITICAL
	}

	return res
}
