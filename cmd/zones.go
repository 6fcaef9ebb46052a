package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xERR0R/sigwatch/lists"
)

// NewZonesCommand creates new command instance printing the zones a check would query
func NewZonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Args:  cobra.NoArgs,
		Short: "prints the normalized zone list",
		RunE:  printZones,
	}
}

func printZones(cmd *cobra.Command, _ []string) error {
	zones, err := lists.LoadZones(cmdContext(cmd), cfg.Zones, lists.NewDownloader(cfg.Downloads, nil))
	if err != nil {
		return err
	}

	for _, z := range zones {
		fmt.Fprintln(cmd.OutOrStdout(), z)
	}

	return nil
}
