//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/log"
)

// IPVersion represents IP protocol version(s) used to reach the nameserver. ENUM(
// dual // IPv4 and IPv6
// v4   // IPv4 only
// v6   // IPv6 only
// )
type IPVersion uint8

// Net returns the network name for net.Resolver lookups
func (ipv IPVersion) Net() string {
	switch ipv {
	case IPVersionDual:
		return "ip"
	case IPVersionV4:
		return "ip4"
	case IPVersionV6:
		return "ip6"
	}

	panic(fmt.Errorf("bad value: %s", ipv))
}

// QTypes returns the query types needed to look up addresses of this version
func (ipv IPVersion) QTypes() []dns.Type {
	switch ipv {
	case IPVersionDual:
		return []dns.Type{dns.Type(dns.TypeA), dns.Type(dns.TypeAAAA)}
	case IPVersionV4:
		return []dns.Type{dns.Type(dns.TypeA)}
	case IPVersionV6:
		return []dns.Type{dns.Type(dns.TypeAAAA)}
	}

	panic(fmt.Errorf("bad value: %s", ipv))
}

// Configurable is a config section which can be enabled and logged
type Configurable interface {
	// IsEnabled returns true when the section is used.
	IsEnabled() bool

	// LogConfig logs the section values.
	LogConfig(*logrus.Entry)
}

// Config main configuration
type Config struct {
	Nameserver   Nameserver   `yaml:"nameserver" default:"localhost"`
	BootstrapDNS Nameserver   `yaml:"bootstrapDns"`
	IPVersion    IPVersion    `yaml:"ipVersion" default:"dual"`
	Zones        ZoneSource   `yaml:"zones"`
	Downloads    Downloads    `yaml:"downloads"`
	Audit        Audit        `yaml:"audit"`
	Report       ReportConfig `yaml:"report"`
	Metrics      Metrics      `yaml:"metrics"`
	Serve        Serve        `yaml:"serve"`
	Redis        Redis        `yaml:"redis"`
	Log          log.Config   `yaml:"log"`
}

// WithDefaults returns a new T with default values applied
func WithDefaults[T any]() (T, error) {
	var cfg T

	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("can't apply %T defaults: %w", cfg, err)
	}

	return cfg, nil
}

// LoadConfig creates new config from YAML file and environment variables.
// A missing file is only an error if the file is mandatory.
func LoadConfig(path string, mandatory bool) (rCfg *Config, rerr error) {
	cfg, err := WithDefaults[Config]()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path != "" {
		fs, err := os.Stat(path)

		switch {
		case errors.Is(err, os.ErrNotExist) && !mandatory:
			log.Log().Debugf("config file '%s' does not exist, using defaults", path)
		case err != nil:
			return nil, &ConfigurationError{Err: fmt.Errorf("can't read config file: %w", err)}
		case fs.IsDir():
			return nil, NewConfigurationError("config path '%s' is a directory", path)
		default:
			if err := loadFile(k, path); err != nil {
				return nil, &ConfigurationError{Err: fmt.Errorf("wrong file structure: %w", err)}
			}
		}
	}

	if err := loadEnvironment(k); err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("can't read environment: %w", err)}
	}

	if err := unmarshalKoanf(k, &cfg); err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("wrong file structure: %w", err)}
	}

	return &cfg, nil
}

// Validate checks all settings needed to run an audit
func (c *Config) Validate() error {
	var errs *multierror.Error

	if c.Nameserver.Host == "" {
		errs = multierror.Append(errs, errors.New("nameserver is not set"))
	} else if c.Nameserver.Port == 0 {
		errs = multierror.Append(errs, fmt.Errorf("invalid port 0 for nameserver %s", c.Nameserver.Host))
	}

	if !c.BootstrapDNS.IsDefault() && !c.BootstrapDNS.IsIP() {
		errs = multierror.Append(errs,
			fmt.Errorf("bootstrapDns must be an IP address, got '%s'", c.BootstrapDNS.Host))
	}

	if !c.IPVersion.IsValid() {
		errs = multierror.Append(errs, fmt.Errorf("unknown IP version %s", c.IPVersion))
	}

	if c.Zones.IsDefault() {
		errs = multierror.Append(errs, errors.New("no zones configured"))
	}

	if err := c.Audit.validate(); err != nil {
		errs = multierror.Append(errs, err)
	}

	if c.Zones.Type == ZoneSourceTypeHttp {
		if c.Downloads.Attempts < 1 {
			errs = multierror.Append(errs, errors.New("downloads.attempts must be at least 1"))
		}

		if !c.Downloads.Timeout.IsAboveZero() {
			errs = multierror.Append(errs, errors.New("downloads.timeout must be above zero"))
		}
	}

	if c.Redis.IsEnabled() && c.Redis.ConnectionAttempts < 1 {
		errs = multierror.Append(errs,
			fmt.Errorf("redis connectionAttempts must be at least 1, got %d", c.Redis.ConnectionAttempts))
	}

	if !c.Report.Format.IsValid() {
		errs = multierror.Append(errs, fmt.Errorf("unknown report format %s", c.Report.Format))
	}

	return collect(errs)
}

// LogConfig logs all enabled sections
func (c *Config) LogConfig(logger *logrus.Entry) {
	logger.Infof("nameserver = %s", c.Nameserver)

	if !c.BootstrapDNS.IsDefault() {
		logger.Infof("bootstrapDns = %s", c.BootstrapDNS)
	}

	logger.Infof("ipVersion = %s", c.IPVersion)
	logger.Infof("zones = %s", c.Zones)

	sections := []struct {
		name string
		cfg  Configurable
	}{
		{"audit", &c.Audit},
		{"downloads", &c.Downloads},
		{"report", &c.Report},
		{"metrics", &c.Metrics},
		{"serve", &c.Serve},
		{"redis", &c.Redis},
	}

	for _, s := range sections {
		if !s.cfg.IsEnabled() {
			continue
		}

		s.cfg.LogConfig(logger.WithField("section", s.name))
	}
}

// ThresholdPtr returns a pointer to days, used to set the threshold programmatically
func ThresholdPtr(days int) *int {
	return &days
}

func trimEnvKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvConfigPrefix))
}
