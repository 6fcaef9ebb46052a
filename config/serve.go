package config

import "github.com/sirupsen/logrus"

// Serve contains the settings of the HTTP probe server
type Serve struct {
	Listen string `yaml:"listen" default:":4000"`
	// Interval of background audits refreshing the metrics, disabled if zero
	Interval Duration `yaml:"interval"`
}

// IsEnabled implements `config.Configurable`.
func (c *Serve) IsEnabled() bool {
	return c.Listen != ""
}

// LogConfig implements `config.Configurable`.
func (c *Serve) LogConfig(logger *logrus.Entry) {
	logger.Infof("listen = %s", c.Listen)

	if c.Interval.IsAboveZero() {
		logger.Infof("interval = %s", c.Interval)
	}
}
