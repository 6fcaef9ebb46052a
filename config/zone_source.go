//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names --values
package config

import (
	"fmt"
	"os"
	"strings"
)

const maxTextSourceDisplayLen = 24

// ZoneSourceType supported ZoneSource types. ENUM(
// text=1 // Inline list.
// http   // HTTP(S).
// file   // Local file.
// )
type ZoneSourceType uint16

// ZoneSource describes where the list of zones to audit comes from
type ZoneSource struct {
	Type ZoneSourceType
	From string
}

// IsDefault returns true if no zone source is configured
func (s *ZoneSource) IsDefault() bool {
	return strings.TrimSpace(s.From) == ""
}

func (s ZoneSource) String() string {
	switch s.Type {
	case ZoneSourceTypeText:
		break

	case ZoneSourceTypeHttp:
		return s.From

	case ZoneSourceTypeFile:
		return fmt.Sprintf("file://%s", s.From)

	default:
		return fmt.Sprintf("unknown source (%s: %s)", s.Type, s.From)
	}

	text := strings.ReplaceAll(strings.TrimSpace(s.From), "\n", ",")

	if len(text) > maxTextSourceDisplayLen {
		return fmt.Sprintf("%s...", text[:maxTextSourceDisplayLen])
	}

	return text
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (s *ZoneSource) UnmarshalText(data []byte) error {
	*s = NewZoneSource(string(data))

	return nil
}

// NewZoneSource detects the source type: a URL, an existing local file or an
// inline list of zones separated by commas or line breaks
func NewZoneSource(source string) ZoneSource {
	trimmed := strings.TrimSpace(source)

	switch {
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return ZoneSource{Type: ZoneSourceTypeHttp, From: trimmed}

	case strings.HasPrefix(trimmed, "file://"):
		return ZoneSource{Type: ZoneSourceTypeFile, From: strings.TrimPrefix(trimmed, "file://")}

	case strings.ContainsAny(trimmed, ",\n"):
		return ZoneSource{Type: ZoneSourceTypeText, From: source}

	case trimmed != "" && isRegularFile(trimmed):
		return ZoneSource{Type: ZoneSourceTypeFile, From: trimmed}

	default:
		return ZoneSource{Type: ZoneSourceTypeText, From: trimmed}
	}
}

// TextZoneSource creates an inline source from the passed zones
func TextZoneSource(zones ...string) ZoneSource {
	return ZoneSource{Type: ZoneSourceTypeText, From: strings.Join(zones, "\n") + "\n"}
}

func isRegularFile(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}

	return stat.Mode().IsRegular()
}
