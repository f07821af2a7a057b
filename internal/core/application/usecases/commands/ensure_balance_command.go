package commands

import (
	"errors"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrEnsureBalanceCommandIsNotConstructed = errors.New(
		"EnsureBalanceCommand must be created via NewEnsureBalanceCommand constructor",
	)
	ErrInitialGrantIsNegative = errors.New("initial grant must not be negative")
)

// EnsureBalanceCommand represents the onboarding of a balance owner.
// Creates the owner's balance with an initial grant when it does not exist;
// repeated calls are no-ops and never grant again.
//
// Example:
//
//	grant := decimal.RequireFromString("1000.00")
//	cmd, err := NewEnsureBalanceCommand(courierID, grant)
//	if err != nil {
//	    return fmt.Errorf("invalid onboarding request: %w", err)
//	}
//
//	handler := NewEnsureBalanceCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to ensure balance: %w", err)
//	}
type EnsureBalanceCommand struct { //nolint:recvcheck //using for validation
	ownerID      kernel.UUID
	initialGrant decimal.Decimal

	guard guard.ConstructorGuard
}

// NewEnsureBalanceCommand creates a command to ensure an owner has a balance.
// Validates that the owner ID is valid and the grant is not negative.
// Returns an error if any validation fails.
func NewEnsureBalanceCommand(ownerID kernel.UUID, initialGrant decimal.Decimal) (EnsureBalanceCommand, error) {
	ensureCommand := EnsureBalanceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ensureCommand.setOwnerID(ownerID),
		ensureCommand.setInitialGrant(initialGrant),
	); err != nil {
		return EnsureBalanceCommand{}, err
	}

	return ensureCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrEnsureBalanceCommandIsNotConstructed if validation fails.
func (c EnsureBalanceCommand) Validate() error {
	return c.guard.Validate(ErrEnsureBalanceCommandIsNotConstructed)
}

// OwnerID returns the identifier of the balance owner.
func (c EnsureBalanceCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// InitialGrant returns the amount granted when the balance is first created.
func (c EnsureBalanceCommand) InitialGrant() decimal.Decimal {
	return c.initialGrant
}

func (c *EnsureBalanceCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *EnsureBalanceCommand) setInitialGrant(initialGrant decimal.Decimal) error {
	if initialGrant.IsNegative() {
		return ErrInitialGrantIsNegative
	}

	c.initialGrant = initialGrant
	return nil
}
