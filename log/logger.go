package log

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

import (
	"errors"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const hostnameFile = "/etc/hostname"

// FormatType format for logging ENUM(
// text // logging as text
// json // JSON format
// )
type FormatType int

// Level log level ENUM(
// info
// trace
// debug
// warn
// error
// fatal
// )
type Level int

type Config struct {
	Level     Level      `yaml:"level" default:"warn"`
	Format    FormatType `yaml:"format" default:"text"`
	Timestamp bool       `yaml:"timestamp" default:"true"`
	Hostname  bool       `yaml:"hostname" default:"false"`
}

// Logger is the global logging instance
// nolint:gochecknoglobals
var logger *logrus.Logger

// nolint:gochecknoinits
func init() {
	logger = logrus.New()

	lc := Config{
		Level:     LevelWarn,
		Format:    FormatTypeText,
		Timestamp: true,
	}

	ConfigureLogger(lc)
}

// Log returns the global logger
func Log() *logrus.Logger {
	return logger
}

// PrefixedLog return the global logger with prefix
func PrefixedLog(prefix string) *logrus.Entry {
	return logger.WithField("prefix", prefix)
}

// EscapeInput removes line breaks from input
func EscapeInput(input string) string {
	result := strings.ReplaceAll(input, "\n", "")
	result = strings.ReplaceAll(result, "\r", "")

	return result
}

// LevelFromVerbosity maps -v / -q flag counts onto a log level.
// Without flags the level is warn; every -v goes one step more verbose
// (info, debug, trace), every -q one step quieter (error, fatal).
func LevelFromVerbosity(verbose, quiet int) Level {
	steps := []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

	const warnIdx = 2

	idx := warnIdx + verbose - quiet

	switch {
	case idx < 0:
		idx = 0
	case idx >= len(steps):
		idx = len(steps) - 1
	}

	return steps[idx]
}

// ConfigureLogger applies configuration to the global logger
func ConfigureLogger(lc Config) {
	level, err := logrus.ParseLevel(lc.Level.String())
	if err != nil {
		logger.Fatalf("invalid log level %s %v", lc.Level, err)
	}

	logger.SetLevel(level)
	logger.SetFormatter(formatterFor(lc))
}

// Silence disables the logger output
func Silence() {
	logger.Out = io.Discard
}

func formatterFor(lc Config) logrus.Formatter {
	var formatter logrus.Formatter = &logrus.JSONFormatter{}

	if lc.Format == FormatTypeText {
		text := &prefixed.TextFormatter{
			TimestampFormat:  "2006-01-02 15:04:05",
			FullTimestamp:    true,
			ForceFormatting:  true,
			QuoteEmptyFields: true,
			DisableTimestamp: !lc.Timestamp,
		}

		text.SetColorScheme(&prefixed.ColorScheme{
			PrefixStyle:    "blue+b",
			TimestampStyle: "white+h",
		})

		formatter = text
	}

	if !lc.Hostname {
		return formatter
	}

	hn, err := readHostname(hostnameFile)
	if err != nil {
		return formatter
	}

	return hostnameFormatter{hostname: hn, next: formatter}
}

// hostnameFormatter adds the host name to every entry before delegating
type hostnameFormatter struct {
	hostname string
	next     logrus.Formatter
}

func (f hostnameFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	withHost := *entry
	withHost.Data = make(logrus.Fields, len(entry.Data)+1)

	maps.Copy(withHost.Data, entry.Data)
	withHost.Data["hostname"] = f.hostname

	return f.next.Format(&withHost)
}

func readHostname(location string) (string, error) {
	if content, err := os.ReadFile(location); err == nil {
		if hn := strings.ToLower(strings.TrimSpace(string(content))); hn != "" {
			return hn, nil
		}
	}

	hn, err := os.Hostname()
	if err != nil {
		return "", errors.New("hostname couldn't be determined")
	}

	return hn, nil
}
