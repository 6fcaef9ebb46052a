package config

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Redis configures the store sharing audit results between probe instances
type Redis struct {
	Address            string   `yaml:"address"`
	Username           string   `yaml:"username" default:""`
	Password           string   `yaml:"password" default:""`
	Database           int      `yaml:"database" default:"0"`
	ConnectionAttempts int      `yaml:"connectionAttempts" default:"3"`
	ConnectionCooldown Duration `yaml:"connectionCooldown" default:"1s"`
	// ResultTTL is the lifetime of the stored last result, it never expires if zero
	ResultTTL Duration `yaml:"resultTTL" default:"24h"`
}

// IsEnabled implements `config.Configurable`.
func (c *Redis) IsEnabled() bool {
	return c.Address != ""
}

// LogConfig implements `config.Configurable`.
func (c *Redis) LogConfig(logger *logrus.Entry) {
	logger.Info("address: ", c.Address)
	logger.Info("username: ", c.Username)
	logger.Info("password: ", obfuscatePassword(c.Password))
	logger.Info("database: ", c.Database)
	logger.Info("connection:")
	logger.Infof("  attempts: %d", c.ConnectionAttempts)
	logger.Infof("  cooldown: %s", c.ConnectionCooldown)
	logger.Infof("result TTL: %s", c.ResultTTL)
}

// obfuscatePassword replaces all characters of a password with *
func obfuscatePassword(pass string) string {
	return strings.Repeat("*", len(pass))
}
