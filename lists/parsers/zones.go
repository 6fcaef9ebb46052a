package parsers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/0xERR0R/sigwatch/util"
)

var ErrInvalidZone = errors.New("invalid zone name")

// Zones parses `r` as list of zone names.
//
// Returned zones are fully qualified and lower case.
func Zones(r io.Reader) SeriesParser[string] {
	return &zones{entries: Entries(r)}
}

type zones struct {
	entries SeriesParser[string]
}

func (z *zones) Position() string {
	return z.entries.Position()
}

func (z *zones) Next(ctx context.Context) (string, error) {
	entry, err := z.entries.Next(ctx)
	if err != nil {
		return "", err
	}

	return ParseZone(entry)
}

// ParseZone normalizes and validates a zone name
func ParseZone(s string) (string, error) {
	zone := util.NormalizeZone(s)

	if !util.IsValidZone(zone) {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidZone, s)
	}

	return zone, nil
}
