// Package history stores the per-session conversation turn log. Turns are
// append-only and never mutated; appends for the same session are serialized
// by each backend so concurrent requests cannot lose updates.
package history

import (
	"context"

	"github.com/seclens/seclens/internal/models"
)

// TurnStore is the session history contract. List returns turns in append
// order; an unknown session yields an empty slice, not an error.
type TurnStore interface {
	Append(ctx context.Context, turn *models.Turn) error
	List(ctx context.Context, sessionID string) ([]models.Turn, error)
}
