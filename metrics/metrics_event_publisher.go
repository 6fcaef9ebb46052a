package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/0xERR0R/sigwatch/evt"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/util"
)

// RegisterEventListeners registers all metric handlers by the event bus
func RegisterEventListeners() {
	registerApplicationEventListeners()
	registerAuditEventListeners()
	registerZoneListEventListeners()
}

func registerApplicationEventListeners() {
	v := versionNumberGauge()
	RegisterMetric(v)

	subscribe(evt.ApplicationStarted, func(version, buildTime string) {
		v.WithLabelValues(version, buildTime).Set(1)
	})
}

func versionNumberGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sigwatch_build_info",
			Help: "Version number and build info",
		}, []string{"version", "build_time"},
	)
}

func registerAuditEventListeners() {
	ageGauge := signatureAgeGauge()
	staleGauge := zoneStaleGauge()
	zonesGauge := zonesGauge()
	verdictGauge := auditVerdictGauge()
	queryDuration := zoneQueryDuration()
	queryErrors := zoneQueryErrors()
	lastAudit := lastAuditTimestamp()

	RegisterMetric(ageGauge)
	RegisterMetric(staleGauge)
	RegisterMetric(zonesGauge)
	RegisterMetric(verdictGauge)
	RegisterMetric(queryDuration)
	RegisterMetric(queryErrors)
	RegisterMetric(lastAudit)

	subscribe(evt.AuditStarted, func(_ string, _ int) {
		// zones removed from the list must not linger
		ageGauge.Reset()
		staleGauge.Reset()
	})

	subscribe(evt.AuditZoneChecked, func(zone string, sigs []model.ClassifiedSignature, duration time.Duration) {
		queryDuration.Observe(duration.Seconds())

		stale := 0.0

		for _, s := range sigs {
			ageGauge.WithLabelValues(zone, strconv.Itoa(int(s.KeyTag))).Set(float64(s.AgeDays))

			if s.Outcome == model.OutcomeSTALE {
				stale = 1
			}
		}

		staleGauge.WithLabelValues(zone).Set(stale)
	})

	subscribe(evt.AuditZoneUnreachable, func(_, reason string, duration time.Duration) {
		queryDuration.Observe(duration.Seconds())
		queryErrors.WithLabelValues(reason).Inc()
	})

	subscribe(evt.AuditCompleted, func(result *model.AuditResult) {
		zonesGauge.WithLabelValues("stale").Set(float64(result.StaleCount()))
		zonesGauge.WithLabelValues("fresh").Set(float64(result.FreshCount()))
		zonesGauge.WithLabelValues("unreachable").Set(float64(result.UnreachableCount()))

		verdictGauge.Set(float64(result.Verdict))
		lastAudit.Set(float64(result.CheckedAt.Unix()))
	})
}

func signatureAgeGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sigwatch_signature_age_days",
			Help: "Age in full days of the signature over the DNSKEY set",
		}, []string{"zone", "key_tag"},
	)
}

func zoneStaleGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sigwatch_zone_stale",
			Help: "1 if the zone has at least one stale signature",
		}, []string{"zone"},
	)
}

func zonesGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sigwatch_zones",
			Help: "Number of zones per state in the last audit",
		}, []string{"state"},
	)
}

func auditVerdictGauge() prometheus.Gauge {
	return prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sigwatch_audit_verdict",
			Help: "Verdict of the last audit: 0 OK, 1 CRITICAL",
		},
	)
}

func zoneQueryDuration() prometheus.Histogram {
	return prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sigwatch_zone_query_duration_seconds",
			Help:    "Duration of the DNSKEY query per zone",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
}

func zoneQueryErrors() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigwatch_zone_query_errors_total",
			Help: "Number of failed zone queries",
		}, []string{"reason"},
	)
}

func lastAuditTimestamp() prometheus.Gauge {
	return prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sigwatch_last_audit_timestamp_seconds",
			Help: "Timestamp of the last completed audit",
		},
	)
}

func registerZoneListEventListeners() {
	failedDownloadCount := failedDownloadCount()

	RegisterMetric(failedDownloadCount)

	subscribe(evt.ZoneListDownloadFailed, func(_ string) {
		failedDownloadCount.Inc()
	})
}

func failedDownloadCount() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sigwatch_failed_downloads_total",
		Help: "Failed zone list download counter",
	})
}

func subscribe(topic string, fn interface{}) {
	util.FatalOnError(fmt.Sprintf("can't subscribe topic '%s'", topic), evt.Bus().Subscribe(topic, fn))
}
