package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xERR0R/sigwatch/audit"
	"github.com/0xERR0R/sigwatch/evt"
	"github.com/0xERR0R/sigwatch/lists"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/metrics"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/redis"
	"github.com/0xERR0R/sigwatch/report"
	"github.com/0xERR0R/sigwatch/util"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Args:  cobra.NoArgs,
		Short: "checks the signatures of all zones once (default command)",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.PrefixedLog("check")
	cfg.LogConfig(logger)

	zones, err := lists.LoadZones(ctx, cfg.Zones, lists.NewDownloader(cfg.Downloads, nil))
	if err != nil {
		return err
	}

	if cfg.Metrics.IsEnabled() {
		metrics.StartCollection()
		evt.Bus().Publish(evt.ApplicationStarted, version, buildTime)
	}

	result, err := audit.NewAuditor(cfg).Run(ctx, zones)
	if err != nil {
		return err
	}

	if err := report.NewRenderer(cfg.Report).Render(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if cfg.Metrics.IsEnabled() {
		// a failed metrics write does not change the exit code
		util.LogOnErrorWithEntry(logger, "can't write metrics: ", metrics.WriteToTextfile(cfg.Metrics.Textfile))
	}

	if cfg.Redis.IsEnabled() {
		util.LogOnErrorWithEntry(logger, "can't share audit result: ", shareResult(ctx, result))
	}

	if code := report.ExitCode(result.Verdict); code != report.ExitOK {
		return &ExitError{Code: code}
	}

	return nil
}

func shareResult(ctx context.Context, result *model.AuditResult) error {
	client, err := redis.New(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.StoreResult(ctx, result)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
