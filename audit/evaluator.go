package audit

import (
	"time"

	"github.com/0xERR0R/sigwatch/model"
)

const day = 24 * time.Hour

// AgeDays returns the number of full days between inception and now, rounded down.
// Inceptions in the future result in negative values.
func AgeDays(inception, now time.Time) int {
	age := now.Sub(inception)

	days := age / day
	if age < 0 && age%day != 0 {
		days--
	}

	return int(days)
}

// Evaluate classifies sig against the threshold. A signature is stale if it is older than thresholdDays,
// an age equal to the threshold is still fresh. Inceptions in the future are flagged as clock anomaly.
func Evaluate(sig model.SignatureRecord, now time.Time, thresholdDays int, nameserver string) model.ClassifiedSignature {
	age := AgeDays(sig.Inception, now)

	outcome := model.OutcomeFRESH
	if age > thresholdDays {
		outcome = model.OutcomeSTALE
	}

	return model.ClassifiedSignature{
		SignatureRecord: sig,
		Outcome:         outcome,
		AgeDays:         age,
		ClockAnomaly:    sig.Inception.After(now),
		Nameserver:      nameserver,
	}
}
