// Package ports defines repository interfaces for the delivery core.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are created by clients through the catalog side of the application;
// the delivery core reads them and advances their status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction. Used by the take-order workflow so that
	// two couriers racing for the same order serialize: the loser re-reads
	// the taken status after the winner commits.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
