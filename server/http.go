package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

const (
	httpReadTimeout     = 20 * time.Second
	httpMinWriteTimeout = 20 * time.Second
	httpShutdownTimeout = 5 * time.Second
)

// httpServer wraps http.Server so that it stops together with a context
type httpServer struct {
	name  string
	inner http.Server
}

func newHTTPServer(name string, handler http.Handler, auditDeadline time.Duration) *httpServer {
	return &httpServer{
		name: name,
		inner: http.Server{
			Handler:           handler,
			ReadTimeout:       httpReadTimeout,
			ReadHeaderTimeout: httpReadTimeout,
			WriteTimeout:      writeTimeoutFor(auditDeadline),
		},
	}
}

// writeTimeoutFor returns a write timeout long enough for a synchronous audit request
func writeTimeoutFor(auditDeadline time.Duration) time.Duration {
	if auditDeadline <= 0 {
		return httpMinWriteTimeout
	}

	return max(auditDeadline+time.Second, httpMinWriteTimeout)
}

func (s *httpServer) String() string {
	return s.name
}

// Serve blocks until ctx is done or the listener fails. Running requests get
// httpShutdownTimeout to finish, a regular stop returns nil.
func (s *httpServer) Serve(ctx context.Context, l net.Listener) error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()

		if err := s.inner.Shutdown(shutdownCtx); err != nil {
			s.inner.Close()
		}
	}()

	if err := s.inner.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
