package commands

import (
	"context"
	"log/slog"
	"strings"

	"tribunal/contexts/arbitration/arbiter-registry/application"
	domainerrors "tribunal/contexts/arbitration/arbiter-registry/domain/errors"
	"tribunal/contexts/arbitration/arbiter-registry/ports"
)

// RevokeArbiterCommand requests removal of every roster row naming an arbiter.
type RevokeArbiterCommand struct {
	Caller  string
	Arbiter string
}

// RevokeArbiterResult reports how many rows were removed and the roster size left.
type RevokeArbiterResult struct {
	Removed    int `json:"removed"`
	RosterSize int `json:"roster_size"`
}

// RevokeArbiterUseCase removes arbiters from the roster. Only the registry
// owner may call it.
type RevokeArbiterUseCase struct {
	Repository ports.RegistryRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Owner      string
	Logger     *slog.Logger
}

// Execute removes all occurrences of the target arbiter. Revoking an arbiter
// that is not on the roster succeeds with a zero removal count; the audit row
// is written either way.
func (uc RevokeArbiterUseCase) Execute(ctx context.Context, cmd RevokeArbiterCommand) (RevokeArbiterResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	arbiter := strings.TrimSpace(cmd.Arbiter)

	logger.Info("revoke arbiter started",
		"event", "registry_revoke_started",
		"module", "arbitration/arbiter-registry",
		"layer", "application",
		"caller", caller,
		"arbiter", arbiter,
	)

	if caller == "" || arbiter == "" {
		return RevokeArbiterResult{}, domainerrors.ErrInvalidInput
	}
	if caller != uc.Owner {
		logger.Warn("revoke arbiter rejected",
			"event", "registry_revoke_owner_rejected",
			"module", "arbitration/arbiter-registry",
			"layer", "application",
			"caller", caller,
			"arbiter", arbiter,
		)
		return RevokeArbiterResult{}, domainerrors.ErrNotAuthorized
	}

	auditID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return RevokeArbiterResult{}, err
	}

	mutation, err := uc.Repository.RemoveArbiter(ctx, ports.RevokeInput{
		AuditID:   auditID,
		Arbiter:   arbiter,
		RevokedBy: caller,
		RevokedAt: uc.Clock.Now(),
	})
	if err != nil {
		logger.Error("revoke arbiter write failed",
			"event", "registry_revoke_write_failed",
			"module", "arbitration/arbiter-registry",
			"layer", "application",
			"caller", caller,
			"arbiter", arbiter,
			"error", err.Error(),
		)
		return RevokeArbiterResult{}, err
	}

	logger.Info("revoke arbiter completed",
		"event", "registry_revoke_completed",
		"module", "arbitration/arbiter-registry",
		"layer", "application",
		"caller", caller,
		"arbiter", arbiter,
		"removed", mutation.Removed,
		"roster_size", mutation.RosterSize,
	)
	return RevokeArbiterResult{Removed: mutation.Removed, RosterSize: mutation.RosterSize}, nil
}
