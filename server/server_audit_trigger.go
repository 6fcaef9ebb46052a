//go:build !windows

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// registerAuditTrigger starts an audit on SIGUSR1
func registerAuditTrigger(ctx context.Context, s *Server) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1)

	go func() {
		defer signal.Stop(signals)

		for {
			select {
			case <-signals:
				logger().Info("audit triggered by signal")
				s.runBackgroundAudit(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
