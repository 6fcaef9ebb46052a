package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Logger", func() {
	Describe("LevelFromVerbosity", func() {
		DescribeTable("maps flag counts to levels",
			func(verbose, quiet int, expected Level) {
				Expect(LevelFromVerbosity(verbose, quiet)).Should(Equal(expected))
			},
			Entry("no flags", 0, 0, LevelWarn),
			Entry("-v", 1, 0, LevelInfo),
			Entry("-vv", 2, 0, LevelDebug),
			Entry("-vvv", 3, 0, LevelTrace),
			Entry("-vvvvv is clamped", 5, 0, LevelTrace),
			Entry("-q", 0, 1, LevelError),
			Entry("-qq", 0, 2, LevelFatal),
			Entry("-qqqq is clamped", 0, 4, LevelFatal),
			Entry("-v -q cancel out", 1, 1, LevelWarn),
		)
	})

	Describe("ConfigureLogger", func() {
		AfterEach(func() {
			ConfigureLogger(Config{Level: LevelWarn, Format: FormatTypeText, Timestamp: true})
			Silence()
		})

		It("should apply the level", func() {
			ConfigureLogger(Config{Level: LevelDebug, Format: FormatTypeText})

			Expect(Log().GetLevel()).Should(Equal(logrus.DebugLevel))
		})

		It("should use the JSON formatter", func() {
			ConfigureLogger(Config{Level: LevelInfo, Format: FormatTypeJson})

			buf := new(bytes.Buffer)
			Log().Out = buf

			PrefixedLog("test").Info("hello")

			Expect(buf.String()).Should(ContainSubstring(`"msg":"hello"`))
			Expect(buf.String()).Should(ContainSubstring(`"prefix":"test"`))
		})

		It("should add the hostname when enabled", func() {
			ConfigureLogger(Config{Level: LevelInfo, Format: FormatTypeJson, Hostname: true})

			buf := new(bytes.Buffer)
			Log().Out = buf

			Log().Info("hello")

			Expect(buf.String()).Should(ContainSubstring(`"hostname":`))
		})
	})

	Describe("readHostname", func() {
		When("hostname file is provided", func() {
			var tmpFile *os.File

			JustBeforeEach(func() {
				var err error

				tmpFile, err = os.CreateTemp("", "prefix")
				Expect(err).Should(Succeed())
				_, err = tmpFile.WriteString("Test-Hostname\n")
				Expect(err).Should(Succeed())
				DeferCleanup(func() { os.Remove(tmpFile.Name()) })
			})

			It("should use it", func() {
				hostname, err := readHostname(tmpFile.Name())
				Expect(err).Should(Succeed())
				Expect(hostname).Should(Equal("test-hostname"))
			})
		})

		When("hostname file is empty", func() {
			It("should fall back to the OS hostname", func() {
				empty := filepath.Join(GinkgoT().TempDir(), "hostname")
				Expect(os.WriteFile(empty, []byte("\n"), 0o600)).Should(Succeed())

				expected, err := os.Hostname()
				Expect(err).Should(Succeed())
				Expect(readHostname(empty)).Should(Equal(expected))
			})
		})

		When("hostname file is not provided", func() {
			It("should fall back to the OS hostname", func() {
				hostname1, err := os.Hostname()
				Expect(err).Should(Succeed())
				hostname2, err := readHostname("")
				Expect(err).Should(Succeed())
				Expect(hostname2).Should(Equal(hostname1))
			})
		})
	})

	Describe("EscapeInput", func() {
		It("should remove line breaks", func() {
			Expect(EscapeInput("exa\nmple.com\r")).Should(Equal("example.com"))
		})
	})

	Describe("context loggers", func() {
		It("should fall back to the global logger", func() {
			Expect(FromCtx(context.Background()).Logger).Should(BeIdenticalTo(Log()))
		})

		It("should keep fields added to the context", func() {
			ctx, _ := NewCtx(context.Background(), PrefixedLog("audit"))
			ctx, _ = CtxWithFields(ctx, logrus.Fields{"zone": "example.com."})

			entry := FromCtx(ctx)

			Expect(entry.Data).Should(HaveKeyWithValue("prefix", "audit"))
			Expect(entry.Data).Should(HaveKeyWithValue("zone", "example.com."))
			Expect(entry.Context).Should(Equal(ctx))
		})

		It("should override the prefix", func() {
			ctx, _ := NewCtx(context.Background(), PrefixedLog("audit"))

			entry := FromCtxWithPrefix(ctx, "fetcher")

			Expect(entry.Data).Should(HaveKeyWithValue("prefix", "fetcher"))
		})
	})
})
