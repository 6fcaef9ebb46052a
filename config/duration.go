package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
)

const day = 24 * time.Hour

// Duration is a time.Duration read from text such as "1m30s" or "2d"
type Duration time.Duration

// ToDuration converts Duration to time.Duration
func (c Duration) ToDuration() time.Duration {
	return time.Duration(c)
}

// IsZero returns true if no duration is set
func (c Duration) IsZero() bool {
	return c == 0
}

// IsAboveZero returns true if duration is strictly greater than zero.
func (c Duration) IsAboveZero() bool {
	return c > 0
}

// String implements `fmt.Stringer` with a human readable form
func (c Duration) String() string {
	return durafmt.Parse(c.ToDuration()).String()
}

// MarshalText implements `encoding.TextMarshaler`.
func (c Duration) MarshalText() ([]byte, error) {
	return []byte(c.ToDuration().String()), nil
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
// Besides the units of time.ParseDuration a whole number of days ("7d") is accepted.
func (c *Duration) UnmarshalText(data []byte) error {
	text := strings.TrimSpace(string(data))

	if days, ok := strings.CutSuffix(text, "d"); ok {
		if n, err := strconv.ParseUint(days, 10, 16); err == nil {
			*c = Duration(time.Duration(n) * day)

			return nil
		}
	}

	d, err := time.ParseDuration(text)
	if err != nil {
		return err
	}

	*c = Duration(d)

	return nil
}
