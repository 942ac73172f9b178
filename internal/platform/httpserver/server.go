package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	arbiterregistry "tribunal/contexts/arbitration/arbiter-registry"
	disputeservice "tribunal/contexts/arbitration/dispute-service"
	settlementledger "tribunal/contexts/finance-core/settlement-ledger"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "tribunal/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	srv      *http.Server
	logger   *slog.Logger
	addr     string
	disputes *disputeservice.Module
	registry *arbiterregistry.Module
	ledger   settlementledger.Module

	// HealthCheck, when set, gates the healthz probe on a dependency ping.
	HealthCheck func(context.Context) error
}

func New(
	disputes *disputeservice.Module,
	registry *arbiterregistry.Module,
	ledger settlementledger.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		disputes: disputes,
		registry: registry,
		ledger:   ledger,
	}
	s.registerRoutes()
	s.srv = &http.Server{Addr: addr, Handler: s.mux}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the routed mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/arbitration/v1/disputes", s.handleOpenDispute)
	s.mux.HandleFunc("GET /api/arbitration/v1/disputes", s.handleListDisputes)
	s.mux.HandleFunc("GET /api/arbitration/v1/disputes/{dispute_id}", s.handleGetDispute)
	s.mux.HandleFunc("POST /api/arbitration/v1/disputes/{dispute_id}/evidence", s.handleSubmitEvidence)
	s.mux.HandleFunc("GET /api/arbitration/v1/disputes/{dispute_id}/evidence", s.handleListEvidence)
	s.mux.HandleFunc("GET /api/arbitration/v1/disputes/{dispute_id}/evidence/{evidence_id}", s.handleGetEvidence)
	s.mux.HandleFunc("POST /api/arbitration/v1/disputes/{dispute_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/arbitration/v1/disputes/{dispute_id}/votes", s.handleListVotes)
	s.mux.HandleFunc("GET /api/arbitration/v1/disputes/{dispute_id}/votes/{arbiter_id}", s.handleGetVote)
	s.mux.HandleFunc("GET /api/arbitration/v1/disputes/{dispute_id}/tally", s.handleGetTally)
	s.mux.HandleFunc("POST /api/arbitration/v1/disputes/{dispute_id}/resolve", s.handleResolveDispute)

	s.mux.HandleFunc("POST /api/registry/v1/arbiters", s.handleRegistryAuthorize)
	s.mux.HandleFunc("DELETE /api/registry/v1/arbiters/{arbiter_id}", s.handleRegistryRevoke)
	s.mux.HandleFunc("GET /api/registry/v1/arbiters", s.handleRegistryRoster)
	s.mux.HandleFunc("GET /api/registry/v1/arbiters/{arbiter_id}", s.handleRegistryGetArbiter)
	s.mux.HandleFunc("GET /api/registry/v1/audit", s.handleRegistryAudit)

	s.mux.HandleFunc("POST /api/ledger/v1/transfers", s.handleLedgerTransfer)
	s.mux.HandleFunc("POST /api/ledger/v1/accounts/{account_id}/credit", s.handleLedgerCredit)
	s.mux.HandleFunc("GET /api/ledger/v1/accounts/{account_id}/balance", s.handleLedgerBalance)
	s.mux.HandleFunc("GET /api/ledger/v1/accounts/{account_id}/transfers", s.handleLedgerHistory)
	s.mux.HandleFunc("GET /api/ledger/v1/settlements", s.handleLedgerSettlements)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.HealthCheck != nil {
		if err := s.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
