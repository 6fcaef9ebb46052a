package resolver

import (
	"net"
	"sync/atomic"

	"github.com/miekg/dns"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/util"
)

// MockUDPNameserver answers DNS queries over UDP on a random local port. Used in tests.
type MockUDPNameserver struct {
	callCount int32
	ln        *net.UDPConn
	answerFn  func(request *dns.Msg) (response *dns.Msg)
}

func NewMockUDPNameserver() *MockUDPNameserver {
	return &MockUDPNameserver{}
}

func (t *MockUDPNameserver) WithAnswerRR(answers ...string) *MockUDPNameserver {
	t.answerFn = func(request *dns.Msg) (response *dns.Msg) {
		msg := new(dns.Msg)

		for _, a := range answers {
			rr, err := dns.NewRR(a)
			util.FatalOnError("can't create RR", err)

			msg.Answer = append(msg.Answer, rr)
		}

		return msg
	}

	return t
}

func (t *MockUDPNameserver) WithAnswerMsg(answer *dns.Msg) *MockUDPNameserver {
	t.answerFn = func(request *dns.Msg) (response *dns.Msg) {
		return answer.Copy()
	}

	return t
}

func (t *MockUDPNameserver) WithAnswerError(errorCode int) *MockUDPNameserver {
	t.answerFn = func(request *dns.Msg) (response *dns.Msg) {
		msg := new(dns.Msg)
		msg.Rcode = errorCode

		return msg
	}

	return t
}

// WithAnswerFn sets the function creating the answer; returning nil sends garbage instead of a message
func (t *MockUDPNameserver) WithAnswerFn(fn func(request *dns.Msg) (response *dns.Msg)) *MockUDPNameserver {
	t.answerFn = fn

	return t
}

func (t *MockUDPNameserver) GetCallCount() int {
	return int(atomic.LoadInt32(&t.callCount))
}

func (t *MockUDPNameserver) Close() {
	if t.ln != nil {
		_ = t.ln.Close()
	}
}

func createConnection() *net.UDPConn {
	a, err := net.ResolveUDPAddr("udp4", "127.0.0.1:0")
	util.FatalOnError("can't resolve address: ", err)

	ln, err := net.ListenUDP("udp4", a)
	util.FatalOnError("can't create connection: ", err)

	return ln
}

// Start listens on a random port and returns the nameserver to reach it
func (t *MockUDPNameserver) Start() config.Nameserver {
	ln := createConnection()

	host, portStr, err := net.SplitHostPort(ln.LocalAddr().String())
	util.FatalOnError("can't split address: ", err)

	port, err := config.ConvertPort(portStr)
	util.FatalOnError("can't convert port: ", err)

	t.ln = ln

	go func() {
		const bufferSize = 4096

		for {
			buffer := make([]byte, bufferSize)

			n, addr, err := ln.ReadFromUDP(buffer)
			if err != nil {
				// closed
				break
			}

			msg := new(dns.Msg)
			err = msg.Unpack(buffer[:n])

			util.FatalOnError("can't deserialize message: ", err)

			response := t.answerFn(msg)

			atomic.AddInt32(&t.callCount, 1)
			// nil should indicate an error
			if response == nil {
				_, _ = ln.WriteToUDP([]byte("dummy"), addr)

				continue
			}

			rCode := response.Rcode
			response.SetReply(msg)

			if rCode != 0 {
				response.Rcode = rCode
			}

			b, err := response.Pack()
			util.FatalOnError("can't serialize message: ", err)

			_, err = ln.WriteToUDP(b, addr)
			if err != nil {
				// closed
				break
			}
		}
	}()

	return config.Nameserver{Host: host, Port: port}
}
