package helpertest

import (
	"time"

	"github.com/miekg/dns"
)

const testPublicKey = "AwEAAb0g6PBJ4lS3Ha8AuqWrgcm2kxZPzbDBEsHnLnIkzSmKIP33mkeL"

// NewDNSKEY creates a zone signing key record for the zone
func NewDNSKEY(zone string) *dns.DNSKEY {
	return &dns.DNSKEY{
		Hdr: dns.RR_Header{
			Name:   dns.Fqdn(zone),
			Rrtype: dns.TypeDNSKEY,
			Class:  dns.ClassINET,
			Ttl:    3600,
		},
		Flags:     dns.ZONE,
		Protocol:  3,
		Algorithm: dns.ECDSAP256SHA256,
		PublicKey: testPublicKey,
	}
}

// NewRRSIG creates a signature over the DNSKEY set of the zone with validity
// window starting at inception and lasting 30 days
func NewRRSIG(zone string, keyTag uint16, inception time.Time) *dns.RRSIG {
	return &dns.RRSIG{
		Hdr: dns.RR_Header{
			Name:   dns.Fqdn(zone),
			Rrtype: dns.TypeRRSIG,
			Class:  dns.ClassINET,
			Ttl:    3600,
		},
		TypeCovered: dns.TypeDNSKEY,
		Algorithm:   dns.ECDSAP256SHA256,
		Labels:      uint8(dns.CountLabel(dns.Fqdn(zone))),
		OrigTtl:     3600,
		Expiration:  uint32(inception.Add(30 * Day).Unix()),
		Inception:   uint32(inception.Unix()),
		KeyTag:      keyTag,
		SignerName:  dns.Fqdn(zone),
		Signature:   "c2lnbmF0dXJl",
	}
}

// SignedDNSKEYAnswer returns the answer section of a DNSKEY query for a signed zone
func SignedDNSKEYAnswer(zone string, sigs ...*dns.RRSIG) []dns.RR {
	res := []dns.RR{NewDNSKEY(zone)}

	for _, s := range sigs {
		res = append(res, s)
	}

	return res
}
