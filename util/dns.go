package util

import (
	"strings"
	"time"

	"github.com/miekg/dns"
)

// NormalizeZone returns the zone as lower case FQDN so it can be used as comparison key.
func NormalizeZone(zone string) string {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return ""
	}

	return dns.Fqdn(strings.ToLower(zone))
}

// IsValidZone returns true if zone is a syntactically valid domain name.
func IsValidZone(zone string) bool {
	if zone == "" || strings.ContainsAny(zone, " \t") {
		return false
	}

	_, ok := dns.IsDomainName(zone)

	return ok
}

// NewMsgWithQuestion creates a new message with the passed question
func NewMsgWithQuestion(question string, qType dns.Type) *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(question), uint16(qType))

	return msg
}

// CoveringRRSIGs returns all RRSIG records of rrs owned by ownerName that cover rrType.
// The order of rrs is preserved.
func CoveringRRSIGs(rrs []dns.RR, ownerName string, rrType uint16) []*dns.RRSIG {
	ownerName = NormalizeZone(ownerName)

	var res []*dns.RRSIG

	for _, rr := range rrs {
		sig, ok := rr.(*dns.RRSIG)
		if !ok {
			continue
		}

		if sig.TypeCovered == rrType && NormalizeZone(sig.Header().Name) == ownerName {
			res = append(res, sig)
		}
	}

	return res
}

// SigTime converts a RRSIG inception or expiration field into a UTC timestamp.
func SigTime(ts uint32) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}
