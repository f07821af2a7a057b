package ports

import (
	"context"

	"goby/internal/core/domain/model/credits"
	"goby/internal/core/domain/model/kernel"
)

// CreditsRepository defines the persistence contract for courier credit balances.
// Each courier owns at most one balance row.
type CreditsRepository interface {
	// Add persists a new balance aggregate to storage.
	// Fails with a conflict error when a balance already exists for the owner.
	Add(ctx context.Context, aggregate *credits.Balance) error

	// Update persists changes to an existing balance aggregate.
	Update(ctx context.Context, aggregate *credits.Balance) error

	// GetByOwner retrieves the balance owned by the given courier.
	// Returns an object-not-found error when the courier has no balance yet.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*credits.Balance, error)

	// GetByOwnerForUpdate retrieves the balance owned by the given courier and
	// locks its row for the duration of the surrounding transaction, so that
	// concurrent debits of the same balance serialize.
	GetByOwnerForUpdate(ctx context.Context, ownerID kernel.UUID) (*credits.Balance, error)
}
