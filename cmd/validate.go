package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/lists"
	"github.com/0xERR0R/sigwatch/log"
)

// NewValidateCommand creates new command instance
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Args:  cobra.NoArgs,
		Short: "Validates the configuration and the zone list",
		RunE:  validateConfiguration,
	}
}

func validateConfiguration(cmd *cobra.Command, _ []string) error {
	log.Log().Infof("Validating configuration file: %s", configPath)

	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(configPath); err != nil && errors.Is(err, os.ErrNotExist) {
			return config.NewConfigurationError("configuration path does not exist")
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	zones, err := lists.LoadZones(cmdContext(cmd), cfg.Zones, lists.NewDownloader(cfg.Downloads, nil))
	if err != nil {
		return err
	}

	log.Log().Infof("Configuration is valid, %d zone(s) to check", len(zones))

	return nil
}
