//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names
package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

const (
	// MinEDNSBufferSize is the smallest UDP payload size which fits DNSKEY sets with signatures
	MinEDNSBufferSize = 4096
	// MaxRetries is the upper bound of retries per zone
	MaxRetries = 1
)

// Transport used to query the nameserver ENUM(
// udp // UDP with TCP fallback on truncated responses
// tcp // TCP only
// )
type Transport uint8

// Audit contains the settings of the signature freshness audit
type Audit struct {
	// ThresholdDays has no default: every operator has to decide it
	ThresholdDays    *int      `yaml:"thresholdDays"`
	Concurrency      int       `yaml:"concurrency" default:"1"`
	Timeout          Duration  `yaml:"timeout" default:"5s"`
	Retries          uint      `yaml:"retries" default:"0"`
	Deadline         Duration  `yaml:"deadline"`
	EDNSBufferSize   uint16    `yaml:"ednsBufferSize" default:"4096"`
	Transport        Transport `yaml:"transport" default:"udp"`
	RecursionDesired bool      `yaml:"recursionDesired" default:"true"`
}

// IsEnabled implements `config.Configurable`.
func (c *Audit) IsEnabled() bool {
	return c.ThresholdDays != nil
}

// LogConfig implements `config.Configurable`.
func (c *Audit) LogConfig(logger *logrus.Entry) {
	if c.ThresholdDays != nil {
		logger.Infof("threshold = %d day(s)", *c.ThresholdDays)
	}

	logger.Infof("concurrency = %d", c.Concurrency)
	logger.Infof("timeout = %s", c.Timeout)
	logger.Infof("retries = %d", c.Retries)

	if c.Deadline.IsAboveZero() {
		logger.Infof("deadline = %s", c.Deadline)
	}

	logger.Infof("transport = %s", c.Transport)
	logger.Infof("EDNS buffer size = %d", c.EDNSBufferSize)
	logger.Infof("recursion desired = %t", c.RecursionDesired)
}

// Threshold returns the configured threshold in days
func (c *Audit) Threshold() int {
	if c.ThresholdDays == nil {
		return 0
	}

	return *c.ThresholdDays
}

func (c *Audit) validate() error {
	var errs *multierror.Error

	switch {
	case c.ThresholdDays == nil:
		errs = multierror.Append(errs, errors.New("staleness threshold is not set"))
	case *c.ThresholdDays < 0:
		errs = multierror.Append(errs, fmt.Errorf("staleness threshold must not be negative, got %d", *c.ThresholdDays))
	}

	if c.Concurrency < 1 {
		errs = multierror.Append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}

	if c.Retries > MaxRetries {
		errs = multierror.Append(errs, fmt.Errorf("at most %d retry per zone is allowed, got %d", MaxRetries, c.Retries))
	}

	if !c.Timeout.IsAboveZero() {
		errs = multierror.Append(errs, fmt.Errorf("timeout must be above zero, got %s", c.Timeout.ToDuration()))
	}

	if c.Deadline < 0 {
		errs = multierror.Append(errs, fmt.Errorf("deadline must not be negative, got %s", c.Deadline.ToDuration()))
	}

	if c.EDNSBufferSize < MinEDNSBufferSize {
		errs = multierror.Append(errs,
			fmt.Errorf("EDNS buffer size must be at least %d, got %d", MinEDNSBufferSize, c.EDNSBufferSize))
	}

	if !c.Transport.IsValid() {
		errs = multierror.Append(errs, fmt.Errorf("unknown transport %s", c.Transport))
	}

	return errs.ErrorOrNil()
}

// Validate checks the audit settings. The returned error is a ConfigurationError.
func (c *Audit) Validate() error {
	var errs *multierror.Error

	if err := c.validate(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return collect(errs)
}
