package commands

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdjustCreditsCommandHandler applies an operator correction to a balance.
// Increments behave like a purchase; decrements fail with an
// InsufficientFunds error rather than driving the balance negative.
type AdjustCreditsCommandHandler struct {
	uowFactory CreditsUoWFactory
}

// NewAdjustCreditsCommandHandler creates a handler for balance adjustments.
// Requires a CreditsUoWFactory for transactional balance updates.
func NewAdjustCreditsCommandHandler(uowFactory CreditsUoWFactory) AdjustCreditsCommandHandler {
	return AdjustCreditsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the adjust-credits command.
// Creates the balance row when the owner has none yet, so a decrement against
// a missing balance fails with InsufficientFunds rather than not-found.
func (h AdjustCreditsCommandHandler) Handle(ctx context.Context, command AdjustCreditsCommand) (BalanceResult, error) {
	if err := command.Validate(); err != nil {
		return BalanceResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BalanceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	creditsRepo := uow.CreditsRepository()

	balance, _, err := getOrCreateBalance(ctx, creditsRepo, command.OwnerID(), decimal.Zero)
	if err != nil {
		return BalanceResult{}, err
	}

	switch command.Direction() {
	case AdjustIncrement:
		err = balance.Credit(command.Amount())
	case AdjustDecrement:
		err = balance.Debit(command.Amount())
	default:
		err = ErrAdjustDirectionIsInvalid
	}
	if err != nil {
		return BalanceResult{}, err
	}

	if err = creditsRepo.Update(ctx, balance); err != nil {
		return BalanceResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BalanceResult{}, err
	}

	return BalanceResult{OwnerID: balance.OwnerID(), Amount: balance.Amount()}, nil
}
