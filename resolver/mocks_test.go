package resolver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/miekg/dns"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type exchangeResult struct {
	msg *dns.Msg
	err error
}

// fakeExchanger returns the configured results in order, the last one is repeated
type fakeExchanger struct {
	results []exchangeResult
	calls   int32
}

func (f *fakeExchanger) ExchangeContext(_ context.Context, m *dns.Msg, _ string) (*dns.Msg, time.Duration, error) {
	n := int(atomic.AddInt32(&f.calls, 1)) - 1
	if n >= len(f.results) {
		n = len(f.results) - 1
	}

	res := f.results[n]
	if res.err != nil {
		return nil, 0, res.err
	}

	resp := res.msg.Copy()
	resp.SetReply(m)
	resp.Truncated = res.msg.Truncated
	resp.Rcode = res.msg.Rcode

	return resp, time.Millisecond, nil
}

func (f *fakeExchanger) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}
