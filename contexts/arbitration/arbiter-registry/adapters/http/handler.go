package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"tribunal/contexts/arbitration/arbiter-registry/application/commands"
	"tribunal/contexts/arbitration/arbiter-registry/application/queries"
	"tribunal/contexts/arbitration/arbiter-registry/domain/entities"
	httptransport "tribunal/contexts/arbitration/arbiter-registry/transport/http"
)

type Handler struct {
	Authorize commands.AuthorizeArbiterUseCase
	Revoke    commands.RevokeArbiterUseCase
	Queries   queries.RegistryQueries
	Logger    *slog.Logger
}

// AuthorizeArbiterHandler godoc
// @Summary Authorize an arbiter
// @Description Appends a roster row. Only the registry owner may call this; the roster caps at 100 rows and repeat authorizations add duplicate rows.
// @Tags registry
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller identity"
// @Param request body httptransport.AuthorizeArbiterRequest true "Arbiter payload"
// @Success 200 {object} httptransport.AuthorizeArbiterResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /api/registry/v1/arbiters [post]
func (h Handler) AuthorizeArbiterHandler(
	ctx context.Context,
	userID string,
	req httptransport.AuthorizeArbiterRequest,
) (httptransport.AuthorizeArbiterResponse, error) {
	result, err := h.Authorize.Execute(ctx, commands.AuthorizeArbiterCommand{
		Caller:  userID,
		Arbiter: req.ArbiterID,
	})
	if err != nil {
		return httptransport.AuthorizeArbiterResponse{}, err
	}
	return httptransport.AuthorizeArbiterResponse{
		Entry:      mapEntry(result.Entry),
		RosterSize: result.RosterSize,
	}, nil
}

// RevokeArbiterHandler godoc
// @Summary Revoke an arbiter
// @Description Removes every roster row naming the arbiter. Revoking an absent arbiter succeeds with removed=0.
// @Tags registry
// @Produce json
// @Param X-User-Id header string true "Caller identity"
// @Param arbiter_id path string true "Arbiter identity"
// @Success 200 {object} httptransport.RevokeArbiterResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /api/registry/v1/arbiters/{arbiter_id} [delete]
func (h Handler) RevokeArbiterHandler(ctx context.Context, userID string, arbiter string) (httptransport.RevokeArbiterResponse, error) {
	result, err := h.Revoke.Execute(ctx, commands.RevokeArbiterCommand{
		Caller:  userID,
		Arbiter: arbiter,
	})
	if err != nil {
		return httptransport.RevokeArbiterResponse{}, err
	}
	return httptransport.RevokeArbiterResponse{
		ArbiterID:  arbiter,
		Removed:    result.Removed,
		RosterSize: result.RosterSize,
	}, nil
}

func (h Handler) GetArbiterHandler(ctx context.Context, arbiter string) (httptransport.ArbiterStatusResponse, error) {
	authorized, err := h.Queries.IsAuthorized(ctx, arbiter)
	if err != nil {
		return httptransport.ArbiterStatusResponse{}, err
	}
	return httptransport.ArbiterStatusResponse{ArbiterID: arbiter, Authorized: authorized}, nil
}

// RosterHandler godoc
// @Summary List the arbiter roster
// @Tags registry
// @Produce json
// @Success 200 {object} httptransport.RosterResponse
// @Router /api/registry/v1/arbiters [get]
func (h Handler) RosterHandler(ctx context.Context) (httptransport.RosterResponse, error) {
	roster, err := h.Queries.Roster(ctx)
	if err != nil {
		return httptransport.RosterResponse{}, err
	}
	items := make([]httptransport.ArbiterEntryDTO, 0, len(roster))
	for _, entry := range roster {
		items = append(items, mapEntry(entry))
	}
	return httptransport.RosterResponse{Items: items, Count: len(items)}, nil
}

func (h Handler) AuditHandler(ctx context.Context, limit int) (httptransport.AuditResponse, error) {
	entries, err := h.Queries.Audit(ctx, limit)
	if err != nil {
		return httptransport.AuditResponse{}, err
	}
	items := make([]httptransport.AuditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.AuditEntryDTO{
			AuditID:    entry.AuditID,
			Action:     string(entry.Action),
			Actor:      entry.Actor,
			ArbiterID:  entry.Arbiter,
			Removed:    entry.Removed,
			OccurredAt: entry.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.AuditResponse{Items: items}, nil
}

func mapEntry(entry entities.ArbiterEntry) httptransport.ArbiterEntryDTO {
	return httptransport.ArbiterEntryDTO{
		EntryID:      entry.EntryID,
		ArbiterID:    entry.Arbiter,
		AuthorizedBy: entry.AuthorizedBy,
		AuthorizedAt: entry.AuthorizedAt.UTC().Format(time.RFC3339),
	}
}
