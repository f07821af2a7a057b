package credits

import (
	"errors"
	"fmt"

	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MaxOperationAmount is the upper bound for a single credit or debit
// operation, guarding against input errors such as a missing decimal point.
var MaxOperationAmount = decimal.NewFromInt(1_000_000)

var (
	// ErrBalanceIsNotConstructed is returned when a Balance instance was not created
	// through the NewBalance or RestoreBalance factory methods.
	ErrBalanceIsNotConstructed = errors.New("Balance must be created via NewBalance constructor")
)

// Balance represents an account's prepaid credits. It is the aggregate root
// of the credits ledger and the only place where the amount is mutated.
//
// Balance follows these invariants:
//   - Amount is never negative
//   - Amount is a fixed-point decimal with two fractional digits
//   - Exactly one balance exists per owner (enforced at the storage layer)
//   - Mutations happen only through Credit and Debit
//
// A courier must hold at least an order's total price in credits to be
// allowed to take that order.
type Balance struct {
	// id is the unique identifier for the balance row
	id kernel.UUID

	// ownerID identifies the account the balance belongs to
	ownerID kernel.UUID

	// amount is the current credits amount, always >= 0
	amount decimal.Decimal

	// isConstructed ensures the balance was created via a constructor
	isConstructed bool
}

// NewBalance creates a balance for an owner with the given starting amount.
// The starting amount must be non-negative with at most two fractional digits;
// zero is the usual value, with an onboarding grant being the exception.
//
// Returns:
//   - *Balance: the created balance if all validations pass
//   - error: validation error if any parameter is invalid
func NewBalance(id kernel.UUID, ownerID kernel.UUID, amount decimal.Decimal) (*Balance, error) {
	balance := &Balance{
		isConstructed: true,
	}

	if err := errors.Join(
		balance.setID(id),
		balance.setOwnerID(ownerID),
		balance.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return balance, nil
}

// RestoreBalance reconstructs a Balance aggregate from persistent storage.
// Validation mirrors NewBalance so corrupted rows cannot produce an invalid
// aggregate (in particular, a negative amount is rejected).
func RestoreBalance(id kernel.UUID, ownerID kernel.UUID, amount decimal.Decimal) (*Balance, error) {
	return NewBalance(id, ownerID, amount)
}

// Validate ensures the Balance instance was properly constructed through
// NewBalance or RestoreBalance.
func (b *Balance) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBalanceIsNotConstructed
	}

	return nil
}

// ID returns the balance's unique identifier.
func (b *Balance) ID() kernel.UUID {
	return b.id
}

// OwnerID returns the identifier of the owning account.
func (b *Balance) OwnerID() kernel.UUID {
	return b.ownerID
}

// Amount returns the current credits amount.
func (b *Balance) Amount() decimal.Decimal {
	return b.amount
}

// CanCover reports whether the balance is sufficient to cover the given amount.
func (b *Balance) CanCover(amount decimal.Decimal) bool {
	return b.amount.GreaterThanOrEqual(amount)
}

// Credit increases the balance by the given amount.
//
// This method enforces the following business rules:
//   - amount must be strictly positive
//   - amount must not exceed MaxOperationAmount
//   - amount must have at most two fractional digits
//
// Returns a ValueIsInvalid or ValueIsOutOfRange error on bad input.
func (b *Balance) Credit(amount decimal.Decimal) error {
	if err := validateOperationAmount(amount); err != nil {
		return err
	}

	b.amount = b.amount.Add(amount)
	return nil
}

// Debit decreases the balance by the given amount.
//
// This method enforces the following business rules:
//   - amount must be strictly positive with at most two fractional digits
//   - the balance must cover the amount
//
// Debiting the exact balance is allowed and leaves the amount at zero.
// Returns an InsufficientFunds error when the balance cannot cover the amount,
// preserving the non-negative invariant.
func (b *Balance) Debit(amount decimal.Decimal) error {
	if err := validateOperationAmount(amount); err != nil {
		return err
	}

	if !b.CanCover(amount) {
		return errs.NewInsufficientFundsError(amount, b.amount)
	}

	b.amount = b.amount.Sub(amount)
	return nil
}

// validateOperationAmount checks the shared constraints on credit and debit amounts.
func validateOperationAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	if amount.Exponent() < -2 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than 2 decimal places", amount))
	}
	if amount.GreaterThan(MaxOperationAmount) {
		return errs.NewValueIsOutOfRangeError("amount", amount, decimal.Zero, MaxOperationAmount)
	}
	return nil
}

// setID validates and sets the balance's unique identifier.
// This is a private method used only during construction.
func (b *Balance) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

// setOwnerID validates and sets the owning account reference.
// This is a private method used only during construction.
func (b *Balance) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	b.ownerID = ownerID
	return nil
}

// setAmount validates and sets the starting amount.
// This is a private method used only during construction.
func (b *Balance) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}
	if amount.Exponent() < -2 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than 2 decimal places", amount))
	}
	b.amount = amount
	return nil
}
