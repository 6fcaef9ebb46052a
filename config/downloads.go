package config

import "github.com/sirupsen/logrus"

// Downloads configures how zone lists given as URL are fetched
type Downloads struct {
	Timeout  Duration `yaml:"timeout" default:"5s"`
	Attempts uint     `yaml:"attempts" default:"3"`
	Cooldown Duration `yaml:"cooldown" default:"500ms"`
}

// IsEnabled implements `config.Configurable`.
func (c *Downloads) IsEnabled() bool {
	return c.Attempts > 0
}

// LogConfig implements `config.Configurable`.
func (c *Downloads) LogConfig(logger *logrus.Entry) {
	logger.Infof("timeout = %s", c.Timeout)
	logger.Infof("attempts = %d", c.Attempts)
	logger.Infof("cooldown = %s", c.Cooldown)
}
