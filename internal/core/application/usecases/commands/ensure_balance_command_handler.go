package commands

import (
	"context"
)

// EnsureBalanceCommandHandler makes sure a balance exists for an owner.
// The initial grant is applied only when this call creates the balance;
// an existing balance is left untouched, making the command idempotent.
type EnsureBalanceCommandHandler struct {
	uowFactory CreditsUoWFactory
}

// NewEnsureBalanceCommandHandler creates a handler for balance onboarding.
// Requires a CreditsUoWFactory for transactional balance creation.
func NewEnsureBalanceCommandHandler(uowFactory CreditsUoWFactory) EnsureBalanceCommandHandler {
	return EnsureBalanceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ensure-balance command.
// Two concurrent calls for the same new owner may race past the existence
// check; the unique owner index rejects the loser with a Conflict error and
// the caller retries against the now-existing row.
func (h EnsureBalanceCommandHandler) Handle(ctx context.Context, command EnsureBalanceCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	creditsRepo := uow.CreditsRepository()

	if _, _, err := getOrCreateBalance(ctx, creditsRepo, command.OwnerID(), command.InitialGrant()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
