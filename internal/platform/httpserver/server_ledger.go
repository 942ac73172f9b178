package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	ledgererrors "tribunal/contexts/finance-core/settlement-ledger/domain/errors"
	ledgerhttp "tribunal/contexts/finance-core/settlement-ledger/transport/http"
)

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{Code: code, Message: message})
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrAccountNotFound):
		writeLedgerError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrInsufficientFunds):
		writeLedgerError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidAmount):
		writeLedgerError(w, http.StatusUnprocessableEntity, "invalid_amount", err.Error())
	case errors.Is(err, ledgererrors.ErrSameAccount):
		writeLedgerError(w, http.StatusUnprocessableEntity, "same_account", err.Error())
	case errors.Is(err, ledgererrors.ErrIdempotencyConflict):
		writeLedgerError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidInput):
		writeLedgerError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func parseLedgerLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limitRaw := r.URL.Query().Get("limit")
	if limitRaw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(limitRaw)
	if err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return 0, false
	}
	return limit, true
}

func (s *Server) handleLedgerTransfer(w http.ResponseWriter, r *http.Request) {
	var req ledgerhttp.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.TransferHandler(r.Context(), r.Header.Get("Idempotency-Key"), req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerCredit(w http.ResponseWriter, r *http.Request) {
	var req ledgerhttp.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.CreditHandler(
		r.Context(),
		r.Header.Get("Idempotency-Key"),
		r.PathValue("account_id"),
		req,
	)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.BalanceHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLedgerLimit(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.HistoryHandler(r.Context(), r.PathValue("account_id"), limit)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerSettlements(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLedgerLimit(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.SettlementsHandler(r.Context(), limit)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
