package model

import (
	"encoding/json"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func signature(zone string, keyTag uint16, outcome Outcome, anomaly bool) ClassifiedSignature {
	return ClassifiedSignature{
		SignatureRecord: SignatureRecord{Zone: zone, KeyTag: keyTag},
		Outcome:         outcome,
		ClockAnomaly:    anomaly,
	}
}

var _ = Describe("Models", func() {
	Describe("NameserverTarget", func() {
		It("should build the address from ip and port", func() {
			ns := NameserverTarget{Host: "ns1.example.com", Port: 5353, IP: net.ParseIP("192.0.2.1")}

			Expect(ns.Addr()).Should(Equal("192.0.2.1:5353"))
			Expect(ns.String()).Should(Equal("ns1.example.com (192.0.2.1:5353)"))
		})

		It("should bracket IPv6 addresses", func() {
			ns := NameserverTarget{Host: "2001:db8::1", Port: 53, IP: net.ParseIP("2001:db8::1")}

			Expect(ns.Addr()).Should(Equal("[2001:db8::1]:53"))
			Expect(ns.String()).Should(Equal("[2001:db8::1]:53"))
		})
	})

	Describe("ZoneReport", func() {
		It("should be stale if one signature is stale", func() {
			z := ZoneReport{Zone: "example.com.", Signatures: []ClassifiedSignature{
				signature("example.com.", 1, OutcomeFRESH, false),
				signature("example.com.", 2, OutcomeSTALE, false),
			}}

			Expect(z.Stale()).Should(BeTrue())
		})

		It("should not be stale if all signatures are fresh", func() {
			z := ZoneReport{Zone: "example.com.", Signatures: []ClassifiedSignature{
				signature("example.com.", 1, OutcomeFRESH, false),
			}}

			Expect(z.Stale()).Should(BeFalse())
		})
	})

	Describe("AuditResult", func() {
		var sut *AuditResult

		BeforeEach(func() {
			sut = &AuditResult{
				Total: 3,
				StaleZones: []ZoneReport{{Zone: "a.", Signatures: []ClassifiedSignature{
					signature("a.", 1, OutcomeSTALE, false),
				}}},
				FreshZones: []ZoneReport{
					{Zone: "b.", Signatures: []ClassifiedSignature{signature("b.", 2, OutcomeFRESH, true)}},
					{Zone: "c.", Signatures: []ClassifiedSignature{signature("c.", 3, OutcomeFRESH, false)}},
				},
				UnreachableZones: []UnreachableZone{{Zone: "d."}},
				Verdict:          VerdictCRITICAL,
			}
		})

		It("should count the buckets", func() {
			Expect(sut.StaleCount()).Should(Equal(1))
			Expect(sut.FreshCount()).Should(Equal(2))
			Expect(sut.UnreachableCount()).Should(Equal(1))
			Expect(sut.Attempted()).Should(Equal(4))
		})

		It("should list clock anomalies", func() {
			Expect(sut.ClockAnomalies()).Should(HaveLen(1))
			Expect(sut.ClockAnomalies()[0].KeyTag).Should(BeEquivalentTo(2))
		})

		It("should serialize enums as names", func() {
			sut.CheckedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

			b, err := json.Marshal(sut)
			Expect(err).Should(Succeed())
			Expect(string(b)).Should(ContainSubstring(`"verdict":"CRITICAL"`))
			Expect(string(b)).Should(ContainSubstring(`"outcome":"STALE"`))
		})
	})

	Describe("Enums", func() {
		It("should parse known values", func() {
			Expect(ParseVerdict("OK")).Should(Equal(VerdictOK))
			Expect(ParseOutcome("STALE")).Should(Equal(OutcomeSTALE))
		})

		It("should reject unknown values", func() {
			_, err := ParseVerdict("WARNING")
			Expect(err).Should(MatchError(ErrInvalidVerdict))
		})
	})
})
