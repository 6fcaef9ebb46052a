package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/miekg/dns"

	. "github.com/0xERR0R/sigwatch/helpertest"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/redis"
	"github.com/0xERR0R/sigwatch/resolver"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Check command", func() {
	var (
		tmpDir *TmpFolder
		mockNS *resolver.MockUDPNameserver
		host   string
		port   string
	)

	BeforeEach(func() {
		DeferCleanup(log.Silence)

		tmpDir = NewTmpFolder("CheckCommand")
		Expect(tmpDir.Error).Should(Succeed())
		DeferCleanup(tmpDir.Clean)

		now := time.Now()

		mockNS = resolver.NewMockUDPNameserver().WithAnswerFn(func(request *dns.Msg) *dns.Msg {
			zone := request.Question[0].Name

			msg := new(dns.Msg)

			switch zone {
			case "fresh.example.com.":
				msg.Answer = SignedDNSKEYAnswer(zone, NewRRSIG(zone, 2371, now.Add(-Day)))
			case "stale.example.com.":
				msg.Answer = SignedDNSKEYAnswer(zone, NewRRSIG(zone, 4711, now.Add(-10*Day)))
			default:
				msg.Rcode = dns.RcodeServerFailure
			}

			return msg
		})

		addr := mockNS.Start()
		host = addr.Host
		port = fmt.Sprint(addr.Port)
		DeferCleanup(mockNS.Close)
	})

	When("a zone is stale", func() {
		It("should report CRITICAL and exit with 1", func() {
			out, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", "fresh.example.com,stale.example.com")
			Expect(err).Should(HaveOccurred())
			Expect(ExitCode(err)).Should(Equal(1))

			Expect(out).Should(ContainSubstring("CRITICAL: zones with DNSKEY signatures older than 3 days found at"))
			Expect(out).Should(ContainSubstring("stale.example.com"))
			Expect(out).Should(ContainSubstring("4711"))
			Expect(out).ShouldNot(ContainSubstring("2371"))
			Expect(out).Should(ContainSubstring("CRITICAL: 1/2 zones stale (threshold: 3 days"))
		})

		It("should be the default command", func() {
			_, err := runCommand("-n", host, "-p", port, "-t", "3", "-z", "stale.example.com")
			Expect(ExitCode(err)).Should(Equal(1))
		})

		It("should list fresh signatures in verbose mode", func() {
			out, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", "fresh.example.com,stale.example.com", "-v")
			Expect(ExitCode(err)).Should(Equal(1))
			Expect(out).Should(ContainSubstring("2371"))
		})
	})

	When("all zones are fresh", func() {
		It("should report OK and exit with 0", func() {
			out, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", "fresh.example.com")
			Expect(err).Should(Succeed())
			Expect(out).Should(ContainSubstring("OK: 0/1 zones stale"))
		})
	})

	When("a zone is unreachable", func() {
		It("should not change the verdict", func() {
			out, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", "fresh.example.com,broken.example.com")
			Expect(err).Should(Succeed())
			Expect(out).Should(ContainSubstring("Unreachable zones"))
			Expect(out).Should(ContainSubstring("broken.example.com"))
			Expect(out).Should(ContainSubstring("unreachable: 1"))
		})
	})

	When("the threshold is missing", func() {
		It("should exit with the config error code", func() {
			_, err := runCommand("check", "-n", host, "-p", port, "-z", "fresh.example.com")
			Expect(err).Should(HaveOccurred())
			Expect(ExitCode(err)).Should(Equal(3))
			Expect(mockNS.GetCallCount()).Should(Equal(0))
		})
	})

	When("no zones are configured", func() {
		It("should exit with the config error code", func() {
			_, err := runCommand("check", "-n", host, "-p", port, "-t", "3")
			Expect(ExitCode(err)).Should(Equal(3))
		})
	})

	When("the output format is json", func() {
		It("should print the result as JSON", func() {
			out, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", "fresh.example.com,stale.example.com", "-o", "json")
			Expect(ExitCode(err)).Should(Equal(1))

			var result model.AuditResult
			Expect(json.Unmarshal([]byte(out), &result)).Should(Succeed())

			Expect(result.Verdict).Should(Equal(model.VerdictCRITICAL))
			Expect(result.Total).Should(Equal(2))
			Expect(&result).Should(HaveStaleZones("stale.example.com."))
			Expect(&result).Should(HaveFreshZones("fresh.example.com."))
			Expect(result.ThresholdDays).Should(Equal(3))
		})
	})

	When("the output format is unknown", func() {
		It("should exit with the config error code", func() {
			_, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", "fresh.example.com", "-o", "xml")
			Expect(ExitCode(err)).Should(Equal(3))
		})
	})

	When("a metrics file is configured", func() {
		It("should write the metrics", func() {
			path := tmpDir.JoinPath("sigwatch.prom")

			_, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", "stale.example.com", "--metrics-file", path)
			Expect(ExitCode(err)).Should(Equal(1))

			content, err := os.ReadFile(path)
			Expect(err).Should(Succeed())
			Expect(string(content)).Should(ContainSubstring(`sigwatch_zone_stale{zone="stale.example.com."} 1`))
			Expect(string(content)).Should(ContainSubstring("sigwatch_audit_verdict 1"))
		})
	})

	When("zones are read from a file", func() {
		It("should skip comments", func() {
			zoneFile := tmpDir.CreateStringFile("zones.txt",
				"# ignore-me.example",
				"",
				"FRESH.example.com.",
			)
			Expect(zoneFile.Error).Should(Succeed())

			out, err := runCommand("check", "-n", host, "-p", port, "-t", "3", "-z", zoneFile.Path)
			Expect(err).Should(Succeed())
			Expect(out).Should(ContainSubstring("OK: 0/1 zones stale"))
			Expect(mockNS.GetCallCount()).Should(Equal(1))
		})
	})

	When("redis is configured", func() {
		It("should share the result", func() {
			redisServer, err := miniredis.Run()
			Expect(err).Should(Succeed())
			DeferCleanup(redisServer.Close)

			cfgFile := tmpDir.CreateStringFile("config.yml",
				"redis:",
				"  address: "+redisServer.Addr(),
			)
			Expect(cfgFile.Error).Should(Succeed())

			_, err = runCommand("check", "--config", cfgFile.Path,
				"-n", host, "-p", port, "-t", "3", "-z", "fresh.example.com")
			Expect(err).Should(Succeed())

			Expect(redisServer.Exists(redis.LastResultKey)).Should(BeTrue())
		})
	})
})
