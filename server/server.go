package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/audit"
	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/lists"
	"github.com/0xERR0R/sigwatch/log"
	"github.com/0xERR0R/sigwatch/metrics"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/redis"
	"github.com/0xERR0R/sigwatch/util"
)

// ErrAuditRunning is returned if an audit is requested while another one is still running
var ErrAuditRunning = errors.New("audit is already running")

type auditRunner interface {
	Run(ctx context.Context, zones []string) (*model.AuditResult, error)
}

// resultStore shares audit results with other probe instances
type resultStore interface {
	StoreResult(ctx context.Context, result *model.AuditResult) error
	LastResult(ctx context.Context) (*model.AuditResult, error)
	Subscribe(ctx context.Context, fn func(*model.AuditResult)) error
	Close() error
}

type zoneLoader func(ctx context.Context) ([]string, error)

// Server exposes audits and metrics over HTTP
type Server struct {
	cfg       *config.Config
	auditor   auditRunner
	loadZones zoneLoader
	store     resultStore
	httpMux   *chi.Mux
	listener  net.Listener
	http      *httpServer

	running    atomic.Bool
	lastResult atomic.Pointer[model.AuditResult]

	newTicker func(d time.Duration) model.TickerWrapper
	stopOnce  sync.Once
	stop      context.CancelFunc
}

func logger() *logrus.Entry {
	return log.PrefixedLog("server")
}

// NewServer creates new server instance with passed config
func NewServer(cfg *config.Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Serve.Listen)
	if err != nil {
		return nil, fmt.Errorf("start http listener on %s failed: %w", cfg.Serve.Listen, err)
	}

	downloader := lists.NewDownloader(cfg.Downloads, nil)

	s := &Server{
		cfg:     cfg,
		auditor: audit.NewAuditor(cfg),
		loadZones: func(ctx context.Context) ([]string, error) {
			return lists.LoadZones(ctx, cfg.Zones, downloader)
		},
		listener: listener,
		newTicker: func(d time.Duration) model.TickerWrapper {
			return model.NewTimeTicker(d)
		},
	}

	redisClient, err := redis.New(context.Background(), &cfg.Redis)
	if err != nil {
		_ = listener.Close()

		return nil, err
	}

	if redisClient != nil {
		s.store = redisClient
	}

	metrics.StartCollection()
	metrics.RegisterRuntimeCollectors()

	s.httpMux = s.createRouter()
	s.http = newHTTPServer("http", s.httpMux, cfg.Audit.Deadline.ToDuration())

	return s, nil
}

// Addr returns the address the server listens on
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start serves HTTP requests and runs the background audits until ctx is done or Stop is called
func (s *Server) Start(ctx context.Context, errCh chan<- error) {
	logger().Info("Starting server")

	ctx, s.stop = context.WithCancel(ctx)

	go func() {
		logger().Infof("http server is up and running on addr/port %s", s.listener.Addr())

		if err := s.http.Serve(ctx, s.listener); err != nil {
			errCh <- fmt.Errorf("start http listener failed: %w", err)
		}
	}()

	if s.cfg.Serve.Interval.IsAboveZero() {
		go s.runPeriodically(ctx, s.newTicker(s.cfg.Serve.Interval.ToDuration()))
	}

	if s.store != nil {
		if err := s.store.Subscribe(ctx, s.updateLastResult); err != nil {
			logger().Error("can't receive audit results of other instances: ", err)
		}
	}

	registerAuditTrigger(ctx, s)
}

// Stop stops the server
func (s *Server) Stop() {
	logger().Info("Stopping server")

	s.stopOnce.Do(func() {
		if s.stop != nil {
			s.stop()
		}

		if s.store != nil {
			util.LogOnError("can't close result store: ", s.store.Close())
		}
	})
}

func (s *Server) runPeriodically(ctx context.Context, ticker model.TickerWrapper) {
	defer ticker.Stop()

	s.runBackgroundAudit(ctx)

	for {
		select {
		case <-ticker.C():
			s.runBackgroundAudit(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) runBackgroundAudit(ctx context.Context) {
	if _, err := s.runAudit(ctx); err != nil {
		logger().Error("background audit failed: ", err)
	}
}

// runAudit loads the zones and audits them, only one audit runs at a time
func (s *Server) runAudit(ctx context.Context) (*model.AuditResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrAuditRunning
	}
	defer s.running.Store(false)

	zones, err := s.loadZones(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.auditor.Run(ctx, zones)
	if err != nil {
		return nil, err
	}

	s.updateLastResult(result)

	if s.store != nil {
		util.LogOnErrorWithEntry(logger(), "can't share audit result: ", s.store.StoreResult(ctx, result))
	}

	return result, nil
}

// updateLastResult keeps the most recent result, results may arrive out of order from other instances
func (s *Server) updateLastResult(result *model.AuditResult) {
	for {
		current := s.lastResult.Load()
		if current != nil && current.CheckedAt.After(result.CheckedAt) {
			return
		}

		if s.lastResult.CompareAndSwap(current, result) {
			return
		}
	}
}

// lastAuditResult returns the last known result, falling back to the shared store
func (s *Server) lastAuditResult(ctx context.Context) (*model.AuditResult, error) {
	if result := s.lastResult.Load(); result != nil || s.store == nil {
		return result, nil
	}

	return s.store.LastResult(ctx)
}
