package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/report"
)

//nolint:gochecknoglobals
var (
	version   = "undefined"
	buildTime = "undefined"

	configPath string
	cfg        *config.Config
	flags      overrides
)

const (
	defaultConfigPath = "./config.yml"
	configFileEnvVar  = config.ConfigFilePath
)

// overrides are command line flags taking precedence over the config file
type overrides struct {
	nameserver  string
	port        uint16
	threshold   int
	zones       string
	verbose     int
	quiet       int
	output      string
	concurrency int
	timeout     time.Duration
	retries     uint
	metricsFile string
}

// ExitError carries the exit code of a command. Err is nil if there is nothing to print.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}

	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewRootCommand creates new root command instance, running a check if no sub command is passed
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "sigwatch",
		Short: "sigwatch checks the freshness of DNSSEC signatures",
		Long: `Checks the age of the RRSIG records covering the DNSKEY set of
a list of zones at one nameserver and reports zones whose signatures were
not renewed within the threshold.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfigPreRun,
		RunE:              runCheck,
	}

	fs := c.PersistentFlags()
	fs.StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	fs.StringVarP(&flags.nameserver, "nameserver", "n", "", "nameserver to query (default localhost)")
	fs.Uint16VarP(&flags.port, "port", "p", 0, "port of the nameserver (default 53)")
	fs.IntVarP(&flags.threshold, "threshold", "t", 0, "signatures older than this number of days are stale")
	fs.StringVarP(&flags.zones, "zones", "z", "", "zone, comma separated list of zones, file or URL")
	fs.CountVarP(&flags.verbose, "verbose", "v", "increase verbosity, also lists fresh signatures")
	fs.CountVarP(&flags.quiet, "quiet", "q", "decrease verbosity")
	fs.StringVarP(&flags.output, "output", "o", "", "report format: table or json")
	fs.IntVar(&flags.concurrency, "concurrency", 0, "number of zones queried in parallel")
	fs.DurationVar(&flags.timeout, "timeout", 0, "timeout of one zone query")
	fs.UintVar(&flags.retries, "retries", 0, "retries of a timed out zone query (0 or 1)")
	fs.StringVar(&flags.metricsFile, "metrics-file", "", "write metrics in the node_exporter textfile format")

	c.MarkFlagsMutuallyExclusive("verbose", "quiet")

	c.AddCommand(
		newCheckCommand(),
		newServeCommand(),
		NewValidateCommand(),
		NewVersionCommand(),
		NewHealthcheckCommand(),
		NewZonesCommand(),
	)

	return c
}

func initConfigPreRun(cmd *cobra.Command, _ []string) error {
	return initConfig(cmd)
}

func initConfig(cmd *cobra.Command) error {
	mandatory := cmd.Flags().Changed("config")

	if !mandatory {
		if path, ok := os.LookupEnv(configFileEnvVar); ok {
			configPath = path
			mandatory = true
		}
	}

	cfgTmp, err := config.LoadConfig(configPath, mandatory)
	if err != nil {
		return err
	}

	applyOverrides(cmd, cfgTmp)

	log.ConfigureLogger(cfgTmp.Log)

	cfg = cfgTmp

	return nil
}

func applyOverrides(cmd *cobra.Command, c *config.Config) {
	changed := cmd.Flags().Changed

	if changed("nameserver") {
		c.Nameserver.Host = flags.nameserver
	}

	if changed("port") {
		c.Nameserver.Port = flags.port
	}

	if changed("threshold") {
		c.Audit.ThresholdDays = config.ThresholdPtr(flags.threshold)
	}

	if changed("zones") {
		c.Zones = config.NewZoneSource(flags.zones)
	}

	if changed("verbose") || changed("quiet") {
		c.Log.Level = log.LevelFromVerbosity(flags.verbose, flags.quiet)
		c.Report.Verbose = flags.verbose > 0
	}

	if changed("output") {
		if err := c.Report.Format.UnmarshalText([]byte(flags.output)); err != nil {
			// reported by Validate
			c.Report.Format = config.ReportFormat(255)
		}
	}

	if changed("concurrency") {
		c.Audit.Concurrency = flags.concurrency
	}

	if changed("timeout") {
		c.Audit.Timeout = config.Duration(flags.timeout)
	}

	if changed("retries") {
		c.Audit.Retries = flags.retries
	}

	if changed("metrics-file") {
		c.Metrics.Textfile = flags.metricsFile
	}
}

// ExitCode maps the error of a command to the process exit code
func ExitCode(err error) int {
	var exitErr *ExitError

	switch {
	case err == nil:
		return report.ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case config.IsConfigurationError(err):
		return report.ExitConfigError
	default:
		return report.ExitRuntime
	}
}

// Execute starts the command
func Execute() {
	c := NewRootCommand()

	err := c.Execute()
	if err != nil && !isSilentExit(err) {
		fmt.Fprintln(c.ErrOrStderr(), "Error:", err)
	}

	os.Exit(ExitCode(err))
}

func isSilentExit(err error) bool {
	var exitErr *ExitError

	return errors.As(err, &exitErr) && exitErr.Err == nil
}
