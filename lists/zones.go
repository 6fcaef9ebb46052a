package lists

import (
	"context"
	"fmt"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/lists/parsers"
)

// LoadZones reads the zones to audit from the source in input order.
// Duplicates are kept; comments and empty entries are skipped.
// Invalid entries and empty lists result in a ConfigurationError.
func LoadZones(ctx context.Context, source config.ZoneSource, downloader FileDownloader) ([]string, error) {
	if source.IsDefault() {
		return nil, config.NewConfigurationError("no zones configured")
	}

	opener, err := NewSourceOpener(source, downloader)
	if err != nil {
		return nil, &config.ConfigurationError{Err: err}
	}

	r, err := opener.Open(ctx)
	if err != nil {
		return nil, &config.ConfigurationError{Err: fmt.Errorf("can't read zones from %s: %w", opener, err)}
	}
	defer r.Close()

	zones, err := parsers.Collect(ctx, parsers.Zones(r))

	switch {
	case parsers.IsNonResumableErr(err):
		return nil, &config.ConfigurationError{Err: fmt.Errorf("can't parse zones from %s: %w", opener, err)}
	case err != nil:
		return nil, &config.ConfigurationError{Err: fmt.Errorf("invalid zones in %s: %w", opener, err)}
	}

	if len(zones) == 0 {
		return nil, config.NewConfigurationError("%s contains no zones", opener)
	}

	logger().WithField("source", opener.String()).Debugf("loaded %d zone(s)", len(zones))

	return zones, nil
}
