package config

import (
	"os"
	"time"

	"github.com/0xERR0R/sigwatch/helpertest"
	"github.com/0xERR0R/sigwatch/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var (
		c *Config

		tmpDir *helpertest.TmpFolder
		err    error
	)

	suiteBeforeEach()

	BeforeEach(func() {
		tmpDir = helpertest.NewTmpFolder("config")
		Expect(tmpDir.Error).Should(Succeed())
		DeferCleanup(tmpDir.Clean)
	})

	Describe("Creation of Config", func() {
		When("Test config file will be parsed", func() {
			It("should return a valid config struct", func() {
				confFile := writeConfigYml(tmpDir)
				Expect(confFile.Error).Should(Succeed())

				c, err = LoadConfig(confFile.Path, true)
				Expect(err).Should(Succeed())

				defaultTestFileConfig(c)
				Expect(c.Validate()).Should(Succeed())
			})
		})

		When("zones are given as list", func() {
			It("should create an inline source", func() {
				cfgFile := tmpDir.CreateStringFile("config.yml",
					"zones:",
					"  - example.com",
					"  - 155.in-addr.arpa.",
					"audit:",
					"  thresholdDays: 0")
				Expect(cfgFile.Error).Should(Succeed())

				c, err = LoadConfig(cfgFile.Path, true)
				Expect(err).Should(Succeed())
				Expect(c.Zones.Type).Should(Equal(ZoneSourceTypeText))
				Expect(c.Zones.From).Should(Equal("example.com\n155.in-addr.arpa.\n"))
				Expect(c.Audit.Threshold()).Should(Equal(0))
				Expect(c.Validate()).Should(Succeed())
			})
		})

		When("Test file does not exist", func() {
			It("should fail if mandatory", func() {
				_, err := LoadConfig(tmpDir.JoinPath("config-does-not-exist.yaml"), true)
				Expect(err).Should(HaveOccurred())
				Expect(IsConfigurationError(err)).Should(BeTrue())
			})

			It("should use defaults if not mandatory", func() {
				c, err = LoadConfig(tmpDir.JoinPath("config-does-not-exist.yaml"), false)
				Expect(err).Should(Succeed())
				Expect(c.Nameserver).Should(Equal(Nameserver{Host: "localhost", Port: 53}))
			})
		})

		When("config path is a folder", func() {
			It("should fail", func() {
				_, err := LoadConfig(tmpDir.Path, true)
				Expect(err).Should(MatchError(ContainSubstring("is a directory")))
			})
		})

		When("config file is malformed", func() {
			It("should return error", func() {
				cfgFile := tmpDir.CreateStringFile("config.yml", "malformed_config")
				Expect(cfgFile.Error).Should(Succeed())

				c, err = LoadConfig(cfgFile.Path, true)
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(ContainSubstring("wrong file structure"))
				Expect(IsConfigurationError(err)).Should(BeTrue())
			})
		})

		When("duration is in wrong format", func() {
			It("should return error", func() {
				cfgFile := tmpDir.CreateStringFile("config.yml",
					"audit:",
					"  timeout: wrongduration")
				Expect(cfgFile.Error).Should(Succeed())

				_, err = LoadConfig(cfgFile.Path, true)
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(ContainSubstring("invalid duration \"wrongduration\""))
			})
		})

		When("nameserver is invalid", func() {
			It("should return error", func() {
				cfgFile := tmpDir.CreateStringFile("config.yml", "nameserver: 'ns:abc'")
				Expect(cfgFile.Error).Should(Succeed())

				_, err = LoadConfig(cfgFile.Path, true)
				Expect(err).Should(MatchError(ContainSubstring("can't convert nameserver")))
			})
		})

		When("environment variables are set", func() {
			BeforeEach(func() {
				os.Setenv("SIGWATCH_AUDIT_THRESHOLDDAYS", "7")
				os.Setenv("SIGWATCH_NAMESERVER", "192.0.2.53:5353")
				DeferCleanup(func() {
					os.Unsetenv("SIGWATCH_AUDIT_THRESHOLDDAYS")
					os.Unsetenv("SIGWATCH_NAMESERVER")
				})
			})

			It("should override defaults", func() {
				c, err = LoadConfig("", false)
				Expect(err).Should(Succeed())
				Expect(c.Audit.Threshold()).Should(Equal(7))
				Expect(c.Nameserver).Should(Equal(Nameserver{Host: "192.0.2.53", Port: 5353}))
			})
		})
	})

	Describe("Default values", func() {
		It("should be applied", func() {
			cfg, err := WithDefaults[Config]()
			Expect(err).Should(Succeed())

			Expect(cfg.Nameserver).Should(Equal(Nameserver{Host: "localhost", Port: 53}))
			Expect(cfg.IPVersion).Should(Equal(IPVersionDual))
			Expect(cfg.Audit.ThresholdDays).Should(BeNil())
			Expect(cfg.Audit.Concurrency).Should(Equal(1))
			Expect(cfg.Audit.Timeout).Should(Equal(Duration(5 * time.Second)))
			Expect(cfg.Audit.Retries).Should(BeZero())
			Expect(cfg.Audit.EDNSBufferSize).Should(BeEquivalentTo(4096))
			Expect(cfg.Audit.Transport).Should(Equal(TransportUdp))
			Expect(cfg.Audit.RecursionDesired).Should(BeTrue())
			Expect(cfg.Report.Format).Should(Equal(ReportFormatTable))
			Expect(cfg.Report.Verbose).Should(BeFalse())
			Expect(cfg.Metrics.Path).Should(Equal("/metrics"))
			Expect(cfg.Serve.Listen).Should(Equal(":4000"))
			Expect(cfg.Log.Level).Should(Equal(log.LevelWarn))
			Expect(cfg.Redis.IsEnabled()).Should(BeFalse())
			Expect(cfg.Redis.ConnectionAttempts).Should(Equal(3))
			Expect(cfg.Redis.ResultTTL).Should(Equal(Duration(24 * time.Hour)))
		})
	})

	Describe("Validate", func() {
		BeforeEach(func() {
			cfg, err := WithDefaults[Config]()
			Expect(err).Should(Succeed())

			c = &cfg
			c.Zones = TextZoneSource("example.com")
			c.Audit.ThresholdDays = ThresholdPtr(2)
		})

		It("should succeed for a complete config", func() {
			Expect(c.Validate()).Should(Succeed())
		})

		It("should fail without threshold", func() {
			c.Audit.ThresholdDays = nil

			err := c.Validate()
			Expect(IsConfigurationError(err)).Should(BeTrue())
			Expect(err).Should(MatchError(ContainSubstring("staleness threshold is not set")))
		})

		It("should fail for negative threshold", func() {
			c.Audit.ThresholdDays = ThresholdPtr(-1)

			Expect(c.Validate()).Should(MatchError(ContainSubstring("must not be negative")))
		})

		It("should fail without zones", func() {
			c.Zones = ZoneSource{}

			Expect(c.Validate()).Should(MatchError(ContainSubstring("no zones configured")))
		})

		It("should fail for more than one retry", func() {
			c.Audit.Retries = 2

			Expect(c.Validate()).Should(MatchError(ContainSubstring("at most 1 retry")))
		})

		It("should fail for small EDNS buffer", func() {
			c.Audit.EDNSBufferSize = 1232

			Expect(c.Validate()).Should(MatchError(ContainSubstring("EDNS buffer size must be at least 4096")))
		})

		It("should fail for bootstrap DNS host name", func() {
			c.BootstrapDNS = Nameserver{Host: "dns.google", Port: 53}

			Expect(c.Validate()).Should(MatchError(ContainSubstring("bootstrapDns must be an IP address")))
		})

		It("should fail for redis without connection attempts", func() {
			c.Redis.Address = "localhost:6379"
			c.Redis.ConnectionAttempts = 0

			Expect(c.Validate()).Should(MatchError(ContainSubstring("redis connectionAttempts must be at least 1")))
		})

		When("zones are downloaded", func() {
			BeforeEach(func() {
				c.Zones = NewZoneSource("https://example.com/zones.txt")
			})

			It("should accept the default download settings", func() {
				Expect(c.Validate()).Should(Succeed())
			})

			It("should fail without download attempts", func() {
				c.Downloads.Attempts = 0
				c.Downloads.Timeout = 0

				err := c.Validate()
				Expect(err).Should(MatchError(ContainSubstring("downloads.attempts must be at least 1")))
				Expect(err).Should(MatchError(ContainSubstring("downloads.timeout must be above zero")))
			})
		})

		It("should ignore download settings for inline zones", func() {
			c.Downloads.Attempts = 0

			Expect(c.Validate()).Should(Succeed())
		})

		It("should collect all errors", func() {
			c.Audit.ThresholdDays = nil
			c.Audit.Concurrency = 0
			c.Audit.Timeout = 0

			err := c.Validate()
			Expect(err).Should(MatchError(ContainSubstring("3 errors occurred")))
			Expect(err).Should(MatchError(ContainSubstring("concurrency must be at least 1")))
			Expect(err).Should(MatchError(ContainSubstring("timeout must be above zero")))
		})
	})

	Describe("LogConfig", func() {
		It("should log enabled sections", func() {
			cfg, err := WithDefaults[Config]()
			Expect(err).Should(Succeed())

			cfg.Audit.ThresholdDays = ThresholdPtr(3)
			cfg.Zones = TextZoneSource("example.com")

			cfg.LogConfig(logger)

			Expect(hook.Calls).ShouldNot(BeEmpty())
			Expect(hook.Messages).Should(ContainElement("nameserver = localhost"))
			Expect(hook.Messages).Should(ContainElement("threshold = 3 day(s)"))
			Expect(hook.Messages).ShouldNot(ContainElement(ContainSubstring("textfile")))
			Expect(hook.Messages).ShouldNot(ContainElement(ContainSubstring("address")))
		})

		It("should obfuscate the redis password", func() {
			cfg, err := WithDefaults[Config]()
			Expect(err).Should(Succeed())

			cfg.Redis.Address = "localhost:6379"
			cfg.Redis.Password = "secret"

			cfg.LogConfig(logger)

			Expect(hook.Messages).Should(ContainElement("password: ******"))
			Expect(hook.Messages).ShouldNot(ContainElement(ContainSubstring("secret")))
		})
	})

	Describe("IPVersion", func() {
		It("should map to network names", func() {
			Expect(IPVersionDual.Net()).Should(Equal("ip"))
			Expect(IPVersionV4.Net()).Should(Equal("ip4"))
			Expect(IPVersionV6.Net()).Should(Equal("ip6"))
		})

		It("should map to query types", func() {
			Expect(IPVersionDual.QTypes()).Should(HaveLen(2))
			Expect(IPVersionV6.QTypes()).Should(ConsistOf(helpertest.AAAA))
		})
	})

	Describe("WithDefaults", func() {
		It("use valid defaults", func() {
			type T struct {
				X int `default:"1"`
			}

			t, err := WithDefaults[T]()
			Expect(err).Should(Succeed())
			Expect(t.X).Should(Equal(1))
		})

		It("return an error if the tag is invalid", func() {
			type T struct {
				X struct{} `default:"fail"`
			}

			_, err := WithDefaults[T]()
			Expect(err).ShouldNot(Succeed())
		})
	})
})

func defaultTestFileConfig(config *Config) {
	Expect(config.Nameserver).Should(Equal(Nameserver{Host: "ns0.ash.arin.net", Port: 5353}))
	Expect(config.IPVersion).Should(Equal(IPVersionV4))
	Expect(config.Zones).Should(Equal(ZoneSource{Type: ZoneSourceTypeText, From: "155.in-addr.arpa., 156.in-addr.arpa."}))
	Expect(config.Audit.Threshold()).Should(Equal(2))
	Expect(config.Audit.Concurrency).Should(Equal(4))
	Expect(config.Audit.Timeout).Should(Equal(Duration(3 * time.Second)))
	Expect(config.Audit.Retries).Should(BeEquivalentTo(1))
	Expect(config.Audit.Transport).Should(Equal(TransportTcp))
	Expect(config.Report.Format).Should(Equal(ReportFormatJson))
	Expect(config.Report.Verbose).Should(BeTrue())
	Expect(config.Metrics.Textfile).Should(Equal("/var/lib/node_exporter/sigwatch.prom"))
	Expect(config.Log.Level).Should(Equal(log.LevelDebug))
	Expect(config.Log.Format).Should(Equal(log.FormatTypeJson))
}

func writeConfigYml(tmpDir *helpertest.TmpFolder) *helpertest.TmpFile {
	return tmpDir.CreateStringFile("config.yml",
		"nameserver: ns0.ash.arin.net:5353",
		"ipVersion: v4",
		"zones: 155.in-addr.arpa., 156.in-addr.arpa.",
		"audit:",
		"  thresholdDays: 2",
		"  concurrency: 4",
		"  timeout: 3s",
		"  retries: 1",
		"  transport: tcp",
		"report:",
		"  format: json",
		"  verbose: true",
		"metrics:",
		"  textfile: /var/lib/node_exporter/sigwatch.prom",
		"log:",
		"  level: debug",
		"  format: json",
	)
}
