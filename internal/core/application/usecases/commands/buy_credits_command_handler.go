package commands

import (
	"context"

	"goby/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// BalanceResult describes an owner's balance after a credits operation.
type BalanceResult struct {
	OwnerID kernel.UUID
	Amount  decimal.Decimal
}

// BuyCreditsCommandHandler credits an owner's balance by a purchased amount.
// Creates the balance row on first purchase; the credit itself is validated
// by the balance aggregate (positive, capped, two decimal places).
type BuyCreditsCommandHandler struct {
	uowFactory CreditsUoWFactory
}

// NewBuyCreditsCommandHandler creates a handler for credits purchases.
// Requires a CreditsUoWFactory for transactional balance updates.
func NewBuyCreditsCommandHandler(uowFactory CreditsUoWFactory) BuyCreditsCommandHandler {
	return BuyCreditsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the buy-credits command.
// The owner's balance row is locked for the duration of the transaction so
// concurrent purchases and debits serialize.
func (h BuyCreditsCommandHandler) Handle(ctx context.Context, command BuyCreditsCommand) (BalanceResult, error) {
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

	if err = balance.Credit(command.Amount()); err != nil {
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
