package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/0xERR0R/sigwatch/metrics"
	"github.com/0xERR0R/sigwatch/model"
	"github.com/0xERR0R/sigwatch/resolver"
)

const (
	PathAudit     = "/audit"
	PathLastAudit = "/audit/last"
	PathHealth    = "/healthz"

	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) createRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)

	router.Get(PathHealth, s.health)
	router.Get(PathAudit, s.apiAudit)
	router.Get(PathLastAudit, s.apiLastAudit)
	router.Handle(s.cfg.Metrics.Path, metrics.Handler())

	return router
}

func (s *Server) health(rw http.ResponseWriter, _ *http.Request) {
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write([]byte("OK"))
}

// apiAudit runs one audit and returns the result.
// The status is 200 if all zones are fresh and 503 if a zone is stale, so probes can alert on it.
func (s *Server) apiAudit(rw http.ResponseWriter, req *http.Request) {
	result, err := s.runAudit(req.Context())
	if err != nil {
		writeError(rw, err)

		return
	}

	writeResult(rw, result)
}

func (s *Server) apiLastAudit(rw http.ResponseWriter, req *http.Request) {
	result, err := s.lastAuditResult(req.Context())
	if err != nil {
		writeError(rw, err)

		return
	}

	if result == nil {
		writeJSON(rw, http.StatusNotFound, errorResponse{Error: "no audit completed yet"})

		return
	}

	writeResult(rw, result)
}

func writeResult(rw http.ResponseWriter, result *model.AuditResult) {
	status := http.StatusOK
	if result.Verdict == model.VerdictCRITICAL {
		status = http.StatusServiceUnavailable
	}

	writeJSON(rw, status, result)
}

func writeError(rw http.ResponseWriter, err error) {
	var resErr *resolver.ResolutionError

	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, ErrAuditRunning):
		status = http.StatusTooManyRequests
	case errors.As(err, &resErr):
		status = http.StatusBadGateway
	}

	logger().Error("audit failed: ", err)

	writeJSON(rw, status, errorResponse{Error: err.Error()})
}

func writeJSON(rw http.ResponseWriter, status int, body any) {
	rw.Header().Set(contentTypeHeader, jsonContentType)
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(body); err != nil {
		logger().Error("unable to write response: ", err)
	}
}
