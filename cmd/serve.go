package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xERR0R/sigwatch/evt"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/server"
)

//nolint:gochecknoglobals
var (
	done    = make(chan bool, 1)
	signals = make(chan os.Signal, 1)
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "start the HTTP probe server",
		RunE:  startServer,
	}
}

func startServer(cmd *cobra.Command, _ []string) error {
	printBanner()

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.LogConfig(log.PrefixedLog("serve"))

	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("can't start server: %w", err)
	}

	errChan := make(chan error, 1)

	srv.Start(cmdContext(cmd), errChan)

	var terminationErr error

	go func() {
		select {
		case <-signals:
			log.Log().Infof("Terminating...")
			srv.Stop()
			done <- true

		case err := <-errChan:
			log.Log().Error("server start failed: ", err)
			terminationErr = err
			srv.Stop()
			done <- true
		}
	}()

	evt.Bus().Publish(evt.ApplicationStarted, version, buildTime)
	<-done

	return terminationErr
}

func printBanner() {
	log.Log().Info("_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/")
	log.Log().Info("_/                                                              _/")
	log.Log().Info("_/                      s i g w a t c h                         _/")
	log.Log().Info("_/                                                              _/")
	log.Log().Infof("_/  Version: %-18s Build time: %-18s  _/", version, buildTime)
	log.Log().Info("_/                                                              _/")
	log.Log().Info("_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/_/")
}
