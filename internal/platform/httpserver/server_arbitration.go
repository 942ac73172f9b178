package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	arbitrationerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
	arbitrationhttp "tribunal/contexts/arbitration/dispute-service/transport/http"
)

func writeArbitrationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, arbitrationhttp.ErrorResponse{Code: code, Message: message})
}

func writeArbitrationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, arbitrationerrors.ErrNotAuthorized):
		writeArbitrationError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, arbitrationerrors.ErrInvalidDispute):
		writeArbitrationError(w, http.StatusNotFound, "dispute_not_found", err.Error())
	case errors.Is(err, arbitrationerrors.ErrVoteNotFound):
		writeArbitrationError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, arbitrationerrors.ErrEvidenceNotFound):
		writeArbitrationError(w, http.StatusNotFound, "evidence_not_found", err.Error())
	case errors.Is(err, arbitrationerrors.ErrAlreadyVoted):
		writeArbitrationError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, arbitrationerrors.ErrDisputeClosed):
		writeArbitrationError(w, http.StatusConflict, "dispute_closed", err.Error())
	case errors.Is(err, arbitrationerrors.ErrStakeTransferFailed):
		writeArbitrationError(w, http.StatusConflict, "stake_transfer_failed", err.Error())
	case errors.Is(err, arbitrationerrors.ErrIdempotencyConflict):
		writeArbitrationError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, arbitrationerrors.ErrInsufficientStake):
		writeArbitrationError(w, http.StatusUnprocessableEntity, "insufficient_stake", err.Error())
	case errors.Is(err, arbitrationerrors.ErrNoVotesCast):
		writeArbitrationError(w, http.StatusUnprocessableEntity, "no_votes_cast", err.Error())
	case errors.Is(err, arbitrationerrors.ErrInvalidVote):
		writeArbitrationError(w, http.StatusBadRequest, "invalid_vote", err.Error())
	case errors.Is(err, arbitrationerrors.ErrInvalidInput):
		writeArbitrationError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		writeArbitrationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func parseDisputeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	disputeID, err := strconv.ParseInt(r.PathValue("dispute_id"), 10, 64)
	if err != nil {
		writeArbitrationError(w, http.StatusBadRequest, "invalid_dispute_id", "dispute_id must be an integer")
		return 0, false
	}
	return disputeID, true
}

func (s *Server) handleOpenDispute(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeArbitrationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req arbitrationhttp.OpenDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeArbitrationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.disputes.Handler.OpenDisputeHandler(
		r.Context(),
		userID,
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDisputes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeArbitrationError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.disputes.Handler.ListDisputesHandler(r.Context(), query.Get("status"), limit)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDispute(w http.ResponseWriter, r *http.Request) {
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}
	resp, err := s.disputes.Handler.GetDisputeHandler(r.Context(), disputeID)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitEvidence(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeArbitrationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}

	var req arbitrationhttp.SubmitEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeArbitrationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.disputes.Handler.SubmitEvidenceHandler(
		r.Context(),
		userID,
		r.Header.Get("Idempotency-Key"),
		disputeID,
		req,
	)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}
	resp, err := s.disputes.Handler.ListEvidenceHandler(r.Context(), disputeID)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEvidence(w http.ResponseWriter, r *http.Request) {
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}
	evidenceID, err := strconv.ParseInt(r.PathValue("evidence_id"), 10, 64)
	if err != nil {
		writeArbitrationError(w, http.StatusBadRequest, "invalid_evidence_id", "evidence_id must be an integer")
		return
	}
	resp, err := s.disputes.Handler.GetEvidenceHandler(r.Context(), disputeID, evidenceID)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeArbitrationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}

	var req arbitrationhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeArbitrationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.disputes.Handler.CastVoteHandler(r.Context(), userID, disputeID, req)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}
	resp, err := s.disputes.Handler.ListVotesHandler(r.Context(), disputeID)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVote(w http.ResponseWriter, r *http.Request) {
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}
	resp, err := s.disputes.Handler.GetVoteHandler(r.Context(), disputeID, r.PathValue("arbiter_id"))
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTally(w http.ResponseWriter, r *http.Request) {
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}
	resp, err := s.disputes.Handler.GetTallyHandler(r.Context(), disputeID)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolveDispute(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeArbitrationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	disputeID, ok := parseDisputeID(w, r)
	if !ok {
		return
	}

	resp, err := s.disputes.Handler.ResolveDisputeHandler(r.Context(), userID, disputeID)
	if err != nil {
		writeArbitrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
