package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/miekg/dns"

	"github.com/0xERR0R/sigwatch/config"
	. "github.com/0xERR0R/sigwatch/helpertest"
	"github.com/0xERR0R/sigwatch/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("dnsClient", func() {
	var (
		sut       *dnsClient
		udp, tcp  *fakeExchanger
		truncated *dns.Msg
		full      *dns.Msg
	)

	BeforeEach(func() {
		truncated = new(dns.Msg)
		truncated.Truncated = true

		full = new(dns.Msg)
		full.Answer = SignedDNSKEYAnswer("example.com")

		udp = &fakeExchanger{}
		tcp = &fakeExchanger{results: []exchangeResult{{msg: full}}}
	})

	JustBeforeEach(func() {
		sut.udpClient = udp
		sut.tcpClient = tcp
	})

	exchange := func(ctx context.Context) (*dns.Msg, error) {
		logger, _ := log.NewMockEntry()
		msg := new(dns.Msg)
		msg.SetQuestion("example.com.", dns.TypeDNSKEY)

		resp, _, err := sut.exchange(ctx, logger, msg, "127.0.0.1:53")

		return resp, err
	}

	When("transport is UDP", func() {
		BeforeEach(func() {
			sut = newDNSClient(config.TransportUdp, 4096)
		})

		It("should not use TCP if the response is complete", func(ctx context.Context) {
			udp.results = []exchangeResult{{msg: full}}

			resp, err := exchange(ctx)
			Expect(err).Should(Succeed())
			Expect(resp.Answer).Should(HaveLen(1))
			Expect(udp.callCount()).Should(Equal(1))
			Expect(tcp.callCount()).Should(BeZero())
		})

		It("should repeat a truncated query over TCP", func(ctx context.Context) {
			udp.results = []exchangeResult{{msg: truncated}}

			resp, err := exchange(ctx)
			Expect(err).Should(Succeed())
			Expect(resp.Truncated).Should(BeFalse())
			Expect(resp.Answer).Should(HaveLen(1))
			Expect(udp.callCount()).Should(Equal(1))
			Expect(tcp.callCount()).Should(Equal(1))
		})

		It("should return UDP errors without falling back", func(ctx context.Context) {
			udp.results = []exchangeResult{{err: errors.New("boom")}}

			_, err := exchange(ctx)
			Expect(err).Should(MatchError("boom"))
			Expect(tcp.callCount()).Should(BeZero())
		})
	})

	When("transport is TCP", func() {
		BeforeEach(func() {
			sut = newDNSClient(config.TransportTcp, 4096)
		})

		It("should never use UDP", func(ctx context.Context) {
			resp, err := exchange(ctx)
			Expect(err).Should(Succeed())
			Expect(resp.Answer).Should(HaveLen(1))
			Expect(udp.callCount()).Should(BeZero())
			Expect(tcp.callCount()).Should(Equal(1))
		})
	})

	Describe("isTemporary", func() {
		It("should detect timeouts", func() {
			Expect(isTemporary(timeoutError{})).Should(BeTrue())
			Expect(isTemporary(fmt.Errorf("wrapped: %w", context.DeadlineExceeded))).Should(BeTrue())
			Expect(isTemporary(&net.OpError{Op: "read", Err: timeoutError{}})).Should(BeTrue())
		})

		It("should reject other errors", func() {
			Expect(isTemporary(errors.New("boom"))).Should(BeFalse())
			Expect(isTemporary(&dns.Error{})).Should(BeFalse())
		})
	})
})
