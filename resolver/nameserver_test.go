package resolver

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/0xERR0R/sigwatch/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NameserverResolver", func() {
	var (
		sut *NameserverResolver
		cfg *config.Config
	)

	BeforeEach(func() {
		c, err := config.WithDefaults[config.Config]()
		Expect(err).Should(Succeed())

		cfg = &c
		cfg.Audit.Timeout = config.Duration(time.Second)
	})

	JustBeforeEach(func() {
		sut = NewNameserverResolver(cfg)
	})

	When("the nameserver is an IP address", func() {
		It("should use it as-is", func(ctx context.Context) {
			target, err := sut.Resolve(ctx, config.Nameserver{Host: "192.0.2.1", Port: 5353})
			Expect(err).Should(Succeed())
			Expect(target.IP.String()).Should(Equal("192.0.2.1"))
			Expect(target.Addr()).Should(Equal("192.0.2.1:5353"))
		})

		It("should accept IPv6 addresses", func(ctx context.Context) {
			target, err := sut.Resolve(ctx, config.Nameserver{Host: "2001:db8::1", Port: 53})
			Expect(err).Should(Succeed())
			Expect(target.Addr()).Should(Equal("[2001:db8::1]:53"))
		})
	})

	When("the nameserver is empty", func() {
		It("should return a resolution error", func(ctx context.Context) {
			_, err := sut.Resolve(ctx, config.Nameserver{Port: 53})

			var resErr *ResolutionError
			Expect(errors.As(err, &resErr)).Should(BeTrue())
		})
	})

	When("a bootstrap DNS is configured", func() {
		var mockNS *MockUDPNameserver

		JustBeforeEach(func() {
			sut.bootstrap = mockNS.Start()
			DeferCleanup(mockNS.Close)
		})

		When("it knows the nameserver", func() {
			BeforeEach(func() {
				mockNS = NewMockUDPNameserver().WithAnswerFn(func(request *dns.Msg) *dns.Msg {
					msg := new(dns.Msg)

					q := request.Question[0]

					switch q.Qtype {
					case dns.TypeA:
						rr, _ := dns.NewRR(q.Name + " 300 IN A 192.0.2.53")
						msg.Answer = append(msg.Answer, rr)
					case dns.TypeAAAA:
						rr, _ := dns.NewRR(q.Name + " 300 IN AAAA 2001:db8::53")
						msg.Answer = append(msg.Answer, rr)
					}

					return msg
				})
			})

			It("should prefer the IPv4 address", func(ctx context.Context) {
				target, err := sut.Resolve(ctx, config.Nameserver{Host: "ns1.example.com", Port: 53})
				Expect(err).Should(Succeed())
				Expect(target.Host).Should(Equal("ns1.example.com"))
				Expect(target.IP.String()).Should(Equal("192.0.2.53"))
				Expect(mockNS.GetCallCount()).Should(Equal(2))
			})

			When("only IPv6 is allowed", func() {
				BeforeEach(func() {
					cfg.IPVersion = config.IPVersionV6
				})

				It("should return the IPv6 address", func(ctx context.Context) {
					target, err := sut.Resolve(ctx, config.Nameserver{Host: "ns1.example.com", Port: 53})
					Expect(err).Should(Succeed())
					Expect(target.IP.String()).Should(Equal("2001:db8::53"))
					Expect(mockNS.GetCallCount()).Should(Equal(1))
				})
			})
		})

		When("it doesn't know the nameserver", func() {
			BeforeEach(func() {
				mockNS = NewMockUDPNameserver().WithAnswerError(dns.RcodeNameError)
			})

			It("should return a resolution error", func(ctx context.Context) {
				_, err := sut.Resolve(ctx, config.Nameserver{Host: "ns1.example.com", Port: 53})

				var resErr *ResolutionError
				Expect(errors.As(err, &resErr)).Should(BeTrue())
				Expect(resErr.Host).Should(Equal("ns1.example.com"))
				Expect(err.Error()).Should(ContainSubstring("NXDOMAIN"))
			})
		})

		When("it returns no addresses", func() {
			BeforeEach(func() {
				mockNS = NewMockUDPNameserver().WithAnswerRR()
			})

			It("should return a resolution error", func(ctx context.Context) {
				_, err := sut.Resolve(ctx, config.Nameserver{Host: "ns1.example.com", Port: 53})

				var resErr *ResolutionError
				Expect(errors.As(err, &resErr)).Should(BeTrue())
			})
		})
	})

	When("the system resolver is used", func() {
		BeforeEach(func() {
			cfg.IPVersion = config.IPVersionV4
		})

		It("should resolve localhost", func(ctx context.Context) {
			target, err := sut.Resolve(ctx, config.Nameserver{Host: "localhost", Port: 53})
			Expect(err).Should(Succeed())
			Expect(target.IP.IsLoopback()).Should(BeTrue())
		})

		It("should fail for an unknown host", func(ctx context.Context) {
			_, err := sut.Resolve(ctx, config.Nameserver{Host: "does-not-exist.invalid", Port: 53})

			var resErr *ResolutionError
			Expect(errors.As(err, &resErr)).Should(BeTrue())
		})
	})

	Describe("preferIPv4", func() {
		It("should return the first IPv4 address", func() {
			Expect(preferIPv4([]net.IP{net.ParseIP("::1"), net.ParseIP("10.0.0.1")}).String()).Should(Equal("10.0.0.1"))
		})

		It("should fall back to the first address", func() {
			Expect(preferIPv4([]net.IP{net.ParseIP("::1"), net.ParseIP("::2")}).String()).Should(Equal("::1"))
		})

		It("should return nil without addresses", func() {
			Expect(preferIPv4(nil)).Should(BeNil())
		})
	})
})
