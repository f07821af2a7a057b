package commands

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrAdjustCreditsCommandIsNotConstructed = errors.New(
		"AdjustCreditsCommand must be created via NewAdjustCreditsCommand constructor",
	)
	ErrAdjustDirectionIsInvalid = errors.New("direction must be increment or decrement")
)

// AdjustDirection selects whether an adjustment adds to or subtracts from a balance.
type AdjustDirection int

const (
	AdjustUnknown AdjustDirection = iota
	AdjustIncrement
	AdjustDecrement
)

// Validate checks that the direction is one of the known values.
func (d AdjustDirection) Validate() error {
	if d != AdjustIncrement && d != AdjustDecrement {
		return ErrAdjustDirectionIsInvalid
	}

	return nil
}

// AdjustCreditsCommand represents an operator manually correcting an owner's
// balance. Authorization of the operator is the calling layer's concern.
type AdjustCreditsCommand struct { //nolint:recvcheck //using for validation
	ownerID   kernel.UUID
	amount    decimal.Decimal
	direction AdjustDirection

	guard guard.ConstructorGuard
}

// NewAdjustCreditsCommand creates a command to adjust an owner's balance.
// Validates that the owner ID is valid, the amount is strictly positive and
// the direction is increment or decrement.
// Returns an error if any validation fails.
func NewAdjustCreditsCommand(
	ownerID kernel.UUID,
	amount decimal.Decimal,
	direction AdjustDirection,
) (AdjustCreditsCommand, error) {
	adjustCommand := AdjustCreditsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		adjustCommand.setOwnerID(ownerID),
		adjustCommand.setAmount(amount),
		adjustCommand.setDirection(direction),
	); err != nil {
		return AdjustCreditsCommand{}, err
	}

	return adjustCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdjustCreditsCommandIsNotConstructed if validation fails.
func (c AdjustCreditsCommand) Validate() error {
	return c.guard.Validate(ErrAdjustCreditsCommandIsNotConstructed)
}

// OwnerID returns the identifier of the balance owner.
func (c AdjustCreditsCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Amount returns the adjustment amount.
func (c AdjustCreditsCommand) Amount() decimal.Decimal {
	return c.amount
}

// Direction returns whether the adjustment credits or debits the balance.
func (c AdjustCreditsCommand) Direction() AdjustDirection {
	return c.direction
}

func (c *AdjustCreditsCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *AdjustCreditsCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountIsNotPositive
	}

	c.amount = amount
	return nil
}

func (c *AdjustCreditsCommand) setDirection(direction AdjustDirection) error {
	if err := direction.Validate(); err != nil {
		return err
	}

	c.direction = direction
	return nil
}
