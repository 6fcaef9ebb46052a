//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names
package config

import (
	"github.com/sirupsen/logrus"
)

// ReportFormat output format of the audit report ENUM(
// table // human readable tables
// json // machine readable AuditResult
// )
type ReportFormat uint8

// ReportConfig contains the settings of the report output
type ReportConfig struct {
	// Verbose also lists fresh signatures
	Verbose bool         `yaml:"verbose" default:"false"`
	Format  ReportFormat `yaml:"format" default:"table"`
}

// IsEnabled implements `config.Configurable`.
func (c *ReportConfig) IsEnabled() bool {
	return true
}

// LogConfig implements `config.Configurable`.
func (c *ReportConfig) LogConfig(logger *logrus.Entry) {
	logger.Infof("format = %s", c.Format)
	logger.Infof("verbose = %t", c.Verbose)
}
