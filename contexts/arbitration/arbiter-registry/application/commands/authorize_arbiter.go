package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tribunal/contexts/arbitration/arbiter-registry/application"
	"tribunal/contexts/arbitration/arbiter-registry/domain/entities"
	domainerrors "tribunal/contexts/arbitration/arbiter-registry/domain/errors"
	"tribunal/contexts/arbitration/arbiter-registry/ports"
)

// AuthorizeArbiterCommand requests a roster append on behalf of the caller.
type AuthorizeArbiterCommand struct {
	Caller  string
	Arbiter string
}

// AuthorizeArbiterResult reports the appended entry and the roster size after it.
type AuthorizeArbiterResult struct {
	Entry      entities.ArbiterEntry `json:"entry"`
	RosterSize int                   `json:"roster_size"`
}

// AuthorizeArbiterUseCase appends arbiters to the roster. Only the registry
// owner may call it, and the roster never grows past RegistryCapacity.
type AuthorizeArbiterUseCase struct {
	Repository ports.RegistryRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Owner      string
	Logger     *slog.Logger
}

// Execute appends one roster row. Repeated authorizations of the same
// arbiter are accepted and each adds a row.
func (uc AuthorizeArbiterUseCase) Execute(ctx context.Context, cmd AuthorizeArbiterCommand) (AuthorizeArbiterResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	arbiter := strings.TrimSpace(cmd.Arbiter)

	logger.Info("authorize arbiter started",
		"event", "registry_authorize_started",
		"module", "arbitration/arbiter-registry",
		"layer", "application",
		"caller", caller,
		"arbiter", arbiter,
	)

	if caller == "" || arbiter == "" {
		return AuthorizeArbiterResult{}, domainerrors.ErrInvalidInput
	}
	if caller != uc.Owner {
		logger.Warn("authorize arbiter rejected",
			"event", "registry_authorize_owner_rejected",
			"module", "arbitration/arbiter-registry",
			"layer", "application",
			"caller", caller,
			"arbiter", arbiter,
		)
		return AuthorizeArbiterResult{}, domainerrors.ErrNotAuthorized
	}

	entryID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return AuthorizeArbiterResult{}, err
	}
	auditID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return AuthorizeArbiterResult{}, err
	}

	mutation, err := uc.Repository.AppendArbiter(ctx, ports.AuthorizeInput{
		EntryID:      entryID,
		AuditID:      auditID,
		Arbiter:      arbiter,
		AuthorizedBy: caller,
		AuthorizedAt: uc.Clock.Now(),
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotAuthorized) {
			logger.Warn("authorize arbiter rejected",
				"event", "registry_authorize_capacity_reached",
				"module", "arbitration/arbiter-registry",
				"layer", "application",
				"caller", caller,
				"arbiter", arbiter,
				"capacity", entities.RegistryCapacity,
			)
			return AuthorizeArbiterResult{}, err
		}
		logger.Error("authorize arbiter write failed",
			"event", "registry_authorize_write_failed",
			"module", "arbitration/arbiter-registry",
			"layer", "application",
			"caller", caller,
			"arbiter", arbiter,
			"error", err.Error(),
		)
		return AuthorizeArbiterResult{}, err
	}

	logger.Info("authorize arbiter completed",
		"event", "registry_authorize_completed",
		"module", "arbitration/arbiter-registry",
		"layer", "application",
		"caller", caller,
		"arbiter", arbiter,
		"roster_size", mutation.RosterSize,
	)
	return AuthorizeArbiterResult{Entry: mutation.Entry, RosterSize: mutation.RosterSize}, nil
}
