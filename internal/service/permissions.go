package service

import (
	"context"
	"fmt"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/ddubrovin/lunchboard/internal/service/ports"
)

// ensureCanManage checks the creator-or-admin rule shared by every restricted
// event mutation.
func ensureCanManage(ctx context.Context, users ports.UserRepo, actorID string, e *domain.Event) error {
	if e.CreatorID == actorID {
		return nil
	}

	actor, err := users.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("check actor: %w", err)
	}
	if actor.IsAdmin() {
		return nil
	}

	return fmt.Errorf("%w: only the event creator or an admin may do this", domain.ErrPermissionDenied)
}

func ensureUserExists(ctx context.Context, users ports.UserRepo, userID string) error {
	if _, err := users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("check actor: %w", err)
	}
	return nil
}
