package commands

import (
	"context"
	"errors"

	"goby/internal/core/domain/model/credits"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/ports"
	"goby/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// getOrCreateBalance loads the owner's balance under a row lock, creating it
// with the given starting amount when it does not exist yet.
//
// Returns the balance and whether it was created by this call. When two
// transactions race to create the same owner's balance, the unique owner
// index makes the loser's Add fail with a Conflict error; callers surface
// that error and let the client retry.
func getOrCreateBalance(
	ctx context.Context,
	repo ports.CreditsRepository,
	ownerID kernel.UUID,
	initial decimal.Decimal,
) (*credits.Balance, bool, error) {
	balance, err := repo.GetByOwnerForUpdate(ctx, ownerID)
	if err == nil {
		return balance, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	balance, err = credits.NewBalance(kernel.NewUUID(), ownerID, initial)
	if err != nil {
		return nil, false, err
	}

	if err := repo.Add(ctx, balance); err != nil {
		return nil, false, err
	}

	return balance, true, nil
}
