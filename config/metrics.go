package config

import "github.com/sirupsen/logrus"

// Metrics contains the config values for prometheus
type Metrics struct {
	// Textfile is written in the node_exporter textfile collector format after each run
	Textfile string `yaml:"textfile"`
	Path     string `yaml:"path" default:"/metrics"`
}

// IsEnabled implements `config.Configurable`.
func (c *Metrics) IsEnabled() bool {
	return c.Textfile != ""
}

// LogConfig implements `config.Configurable`.
func (c *Metrics) LogConfig(logger *logrus.Entry) {
	logger.Infof("textfile: %s", c.Textfile)
	logger.Infof("url path: %s", c.Path)
}
