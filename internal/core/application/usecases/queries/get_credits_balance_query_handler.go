package queries

import (
	"context"
	"database/sql"
	"errors"

	"goby/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCreditsBalanceQueryHandler retrieves balance read models from the database.
type GetCreditsBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetCreditsBalanceQueryHandler creates a handler for balance queries.
// Requires a GORM database connection for query execution.
func NewGetCreditsBalanceQueryHandler(db *gorm.DB) GetCreditsBalanceQueryHandler {
	return GetCreditsBalanceQueryHandler{db: db}
}

// Handle executes the query to retrieve an owner's balance.
// An owner without a balance row is reported as not found rather than zero:
// the distinction matters to the onboarding flow.
func (h GetCreditsBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetCreditsBalanceQuery,
) (GetCreditsBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCreditsBalanceQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT amount
		FROM credits
		WHERE owner_id = ?
	`, query.OwnerID().String()).Row()

	var amount decimal.Decimal

	err := row.Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCreditsBalanceQueryResponse{}, errs.NewObjectNotFoundError("ownerID", query.OwnerID())
	}
	if err != nil {
		return GetCreditsBalanceQueryResponse{}, err
	}

	return GetCreditsBalanceQueryResponse{
		OwnerID: query.OwnerID(),
		Amount:  amount,
	}, nil
}
