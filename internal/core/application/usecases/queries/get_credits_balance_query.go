package queries

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCreditsBalanceQueryIsNotConstructed = errors.New(
	"GetCreditsBalanceQuery must be created via NewGetCreditsBalanceQuery constructor",
)

// GetCreditsBalanceQuery retrieves the current credits amount for an owner.
//
// Example:
//
//	query, err := NewGetCreditsBalanceQuery(courierID)
//	if err != nil {
//	    return fmt.Errorf("invalid owner id: %w", err)
//	}
//
//	handler := NewGetCreditsBalanceQueryHandler(db)
//	balance, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve balance: %w", err)
//	}
//	fmt.Printf("Balance: %s\n", balance.Amount.StringFixed(2))
type GetCreditsBalanceQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCreditsBalanceQuery creates a query to retrieve an owner's balance.
// Returns an error when the identifier is invalid.
func NewGetCreditsBalanceQuery(ownerID kernel.UUID) (GetCreditsBalanceQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetCreditsBalanceQuery{}, err
	}

	return GetCreditsBalanceQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCreditsBalanceQueryIsNotConstructed if validation fails.
func (q GetCreditsBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetCreditsBalanceQueryIsNotConstructed)
}

// OwnerID returns the identifier of the balance owner.
func (q GetCreditsBalanceQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// GetCreditsBalanceQueryResponse represents an owner's balance in the read model.
type GetCreditsBalanceQueryResponse struct {
	OwnerID kernel.UUID
	Amount  decimal.Decimal
}
