package model

//go:generate go-enum -f=$GOFILE --marshal --names
import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Outcome represents the freshness classification of a signature ENUM(
// FRESH // signature age is within the threshold
// STALE // signature age exceeds the threshold
// )
type Outcome uint8

// Verdict represents the overall result of an audit ENUM(
// OK // no zone is stale
// CRITICAL // at least one zone is stale
// )
type Verdict uint8

// NameserverTarget is the nameserver all zones are queried against
type NameserverTarget struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
	IP   net.IP `json:"ip"`
}

// Addr returns the address in the form ip:port
func (n NameserverTarget) Addr() string {
	return net.JoinHostPort(n.IP.String(), strconv.Itoa(int(n.Port)))
}

func (n NameserverTarget) String() string {
	if n.IP == nil || n.Host == n.IP.String() {
		return net.JoinHostPort(n.Host, strconv.Itoa(int(n.Port)))
	}

	return fmt.Sprintf("%s (%s)", n.Host, n.Addr())
}

// SignatureRecord is one RRSIG covering the DNSKEY set of a zone
type SignatureRecord struct {
	Zone       string    `json:"zone"`
	KeyTag     uint16    `json:"keyTag"`
	Algorithm  uint8     `json:"algorithm"`
	SignerName string    `json:"signerName"`
	Inception  time.Time `json:"inception"`
	Expiration time.Time `json:"expiration"`
}

// ClassifiedSignature is a signature with its evaluated age
type ClassifiedSignature struct {
	SignatureRecord

	Outcome      Outcome `json:"outcome"`
	AgeDays      int     `json:"ageDays"`
	ClockAnomaly bool    `json:"clockAnomaly"`
	Nameserver   string  `json:"nameserver"`
}

// ZoneReport holds all classified signatures of one zone in fetch order
type ZoneReport struct {
	Zone       string                `json:"zone"`
	Signatures []ClassifiedSignature `json:"signatures"`
}

// Stale returns true if at least one signature of the zone is stale
func (z ZoneReport) Stale() bool {
	for _, s := range z.Signatures {
		if s.Outcome == OutcomeSTALE {
			return true
		}
	}

	return false
}

// UnreachableZone is a zone whose signatures could not be retrieved
type UnreachableZone struct {
	Zone       string `json:"zone"`
	Nameserver string `json:"nameserver"`
	Error      string `json:"error"`
}

// AuditResult is the aggregated outcome of one audit run
type AuditResult struct {
	RunID            string            `json:"runId"`
	Nameserver       string            `json:"nameserver"`
	ThresholdDays    int               `json:"thresholdDays"`
	CheckedAt        time.Time         `json:"checkedAt"`
	Total            int               `json:"total"`
	StaleZones       []ZoneReport      `json:"staleZones"`
	FreshZones       []ZoneReport      `json:"freshZones"`
	UnreachableZones []UnreachableZone `json:"unreachableZones"`
	Verdict          Verdict           `json:"verdict"`
}

// StaleCount returns the number of zones with at least one stale signature
func (r *AuditResult) StaleCount() int {
	return len(r.StaleZones)
}

// FreshCount returns the number of zones without stale signatures
func (r *AuditResult) FreshCount() int {
	return len(r.FreshZones)
}

// UnreachableCount returns the number of zones which could not be queried
func (r *AuditResult) UnreachableCount() int {
	return len(r.UnreachableZones)
}

// Attempted returns the number of distinct zones the audit tried to query
func (r *AuditResult) Attempted() int {
	return r.Total + r.UnreachableCount()
}

// ClockAnomalies returns all signatures with an inception in the future
func (r *AuditResult) ClockAnomalies() []ClassifiedSignature {
	var res []ClassifiedSignature

	for _, bucket := range [][]ZoneReport{r.StaleZones, r.FreshZones} {
		for _, z := range bucket {
			for _, s := range z.Signatures {
				if s.ClockAnomaly {
					res = append(res, s)
				}
			}
		}
	}

	return res
}
