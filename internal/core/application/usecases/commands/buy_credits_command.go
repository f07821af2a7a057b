package commands

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrBuyCreditsCommandIsNotConstructed = errors.New(
		"BuyCreditsCommand must be created via NewBuyCreditsCommand constructor",
	)
	ErrAmountIsNotPositive = errors.New("amount must be greater than 0")
)

// BuyCreditsCommand represents a courier topping up their credits balance.
// Creates the balance on first purchase and credits it by the given amount.
//
// Example:
//
//	amount := decimal.RequireFromString("250.00")
//	cmd, err := NewBuyCreditsCommand(courierID, amount)
//	if err != nil {
//	    return fmt.Errorf("invalid purchase: %w", err)
//	}
//
//	handler := NewBuyCreditsCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to buy credits: %w", err)
//	}
type BuyCreditsCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	amount  decimal.Decimal

	guard guard.ConstructorGuard
}

// NewBuyCreditsCommand creates a command to credit an owner's balance.
// Validates that the owner ID is valid and the amount is strictly positive;
// the per-operation cap and scale are enforced by the balance aggregate.
// Returns an error if any validation fails.
func NewBuyCreditsCommand(ownerID kernel.UUID, amount decimal.Decimal) (BuyCreditsCommand, error) {
	buyCommand := BuyCreditsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		buyCommand.setOwnerID(ownerID),
		buyCommand.setAmount(amount),
	); err != nil {
		return BuyCreditsCommand{}, err
	}

	return buyCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBuyCreditsCommandIsNotConstructed if validation fails.
func (c BuyCreditsCommand) Validate() error {
	return c.guard.Validate(ErrBuyCreditsCommandIsNotConstructed)
}

// OwnerID returns the identifier of the balance owner.
func (c BuyCreditsCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Amount returns the purchased credits amount.
func (c BuyCreditsCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c *BuyCreditsCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *BuyCreditsCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountIsNotPositive
	}

	c.amount = amount
	return nil
}
