package helpertest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/model"

	"github.com/miekg/dns"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"
)

const (
	A      = dns.Type(dns.TypeA)
	AAAA   = dns.Type(dns.TypeAAAA)
	DNSKEY = dns.Type(dns.TypeDNSKEY)
	RRSIG  = dns.Type(dns.TypeRRSIG)
)

// Day is the unit signature ages are measured in
const Day = 24 * time.Hour

// GetIntPort returns an port for the current testing
// process by adding the current ginkgo parallel process to
// the base port and returning it as int
func GetIntPort(port int) int {
	return port + ginkgo.GinkgoParallelProcess()
}

// GetStringPort returns an port for the current testing
// process by adding the current ginkgo parallel process to
// the base port and returning it as string
func GetStringPort(port int) string {
	return fmt.Sprintf("%d", GetIntPort(port))
}

// TestServer creates temp http server with passed data
func TestServer(data string) *httptest.Server {
	return TestServerWithStatus(http.StatusOK, data)
}

// TestServerWithStatus creates temp http server which answers with passed status and data
func TestServerWithStatus(status int, data string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(status)

		_, err := rw.Write([]byte(data))
		if err != nil {
			log.Log().Fatal("can't write to buffer:", err)
		}
	}))

	ginkgo.DeferCleanup(srv.Close)

	return srv
}

// HaveOutcome checks the outcome of a classified signature
func HaveOutcome(outcome model.Outcome) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(s model.ClassifiedSignature) (bool, error) {
		return s.Outcome == outcome, nil
	}).WithTemplate(
		"Expected:\n{{.Actual}}\n{{.To}} have outcome:\n{{format .Data 1}}",
		outcome.String(),
	)
}

// HaveAgeDays checks the evaluated age of a classified signature
func HaveAgeDays(days int) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(s model.ClassifiedSignature) (bool, error) {
		return s.AgeDays == days, nil
	}).WithTemplate(
		"Expected:\n{{.Actual}}\n{{.To}} have age in days:\n{{format .Data 1}}",
		days,
	)
}

// HaveVerdict checks the verdict of an audit result
func HaveVerdict(verdict model.Verdict) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(r *model.AuditResult) (bool, error) {
		return r.Verdict == verdict, nil
	}).WithTemplate(
		"Expected:\n{{.Actual}}\n{{.To}} have verdict:\n{{format .Data 1}}",
		verdict.String(),
	)
}

// ZoneNames returns the zone names of the reports in order
func ZoneNames(reports []model.ZoneReport) []string {
	res := make([]string, 0, len(reports))

	for _, r := range reports {
		res = append(res, r.Zone)
	}

	return res
}

// UnreachableNames returns the zone names of the unreachable zones in order
func UnreachableNames(zones []model.UnreachableZone) []string {
	res := make([]string, 0, len(zones))

	for _, z := range zones {
		res = append(res, z.Zone)
	}

	return res
}

// HaveStaleZones checks the stale bucket of an audit result contains exactly the zones in order
func HaveStaleZones(zones ...string) types.GomegaMatcher {
	return gomega.WithTransform(func(r *model.AuditResult) []string {
		return ZoneNames(r.StaleZones)
	}, gomega.Equal(append([]string{}, zones...)))
}

// HaveFreshZones checks the fresh bucket of an audit result contains exactly the zones in order
func HaveFreshZones(zones ...string) types.GomegaMatcher {
	return gomega.WithTransform(func(r *model.AuditResult) []string {
		return ZoneNames(r.FreshZones)
	}, gomega.Equal(append([]string{}, zones...)))
}

// HaveUnreachableZones checks the unreachable bucket of an audit result contains exactly the zones in order
func HaveUnreachableZones(zones ...string) types.GomegaMatcher {
	return gomega.WithTransform(func(r *model.AuditResult) []string {
		return UnreachableNames(r.UnreachableZones)
	}, gomega.Equal(append([]string{}, zones...)))
}
