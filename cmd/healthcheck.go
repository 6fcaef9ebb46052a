package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xERR0R/sigwatch/server"
)

const (
	defaultHTTPPort  = 4000
	defaultIPAddress = "127.0.0.1"
	healthTimeout    = 5 * time.Second
)

// NewHealthcheckCommand creates new command instance checking a running probe server
func NewHealthcheckCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "healthcheck",
		Args:  cobra.NoArgs,
		Short: "performs healthcheck of a running server",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: healthcheck,
	}

	c.Flags().Uint16("http-port", defaultHTTPPort, "sigwatch HTTP port")
	c.Flags().StringP("bindip", "b", defaultIPAddress, "sigwatch host binding ip address")

	return c
}

func healthcheck(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetUint16("http-port")
	bindIP, _ := cmd.Flags().GetString("bindip")

	ctx, cancel := context.WithTimeout(cmdContext(cmd), healthTimeout)
	defer cancel()

	url := fmt.Sprintf("http://%s%s", net.JoinHostPort(bindIP, fmt.Sprint(port)), server.PathHealth)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err == nil {
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("response NOK, %s", resp.Status)
		}
	}

	if err == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "NOT OK")
	}

	return err
}
