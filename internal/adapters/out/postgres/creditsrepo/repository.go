package creditsrepo

import (
	"context"
	"errors"

	"goby/internal/core/domain/model/credits"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCreditsRepository implements CreditsRepository using GORM.
type GormCreditsRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCreditsRepository creates a new GORM credits repository.
func NewGormCreditsRepository(db *gorm.DB, tracker aggregateTracker) *GormCreditsRepository {
	return &GormCreditsRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new balance to the database.
// Returns a Conflict error when the owner already has a balance row.
func (r *GormCreditsRepository) Add(ctx context.Context, aggregate *credits.Balance) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("ownerID", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing balance to the database.
func (r *GormCreditsRepository) Update(ctx context.Context, aggregate *credits.Balance) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CreditsDTO{}).Where("id = ?", dto.ID).Update("amount", dto.Amount)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOwner retrieves the balance owned by the given account.
func (r *GormCreditsRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*credits.Balance, error) {
	return r.getByOwner(ctx, ownerID, false)
}

// GetByOwnerForUpdate retrieves the balance owned by the given account and
// locks its row until the surrounding transaction ends, serializing
// concurrent credits and debits.
func (r *GormCreditsRepository) GetByOwnerForUpdate(ctx context.Context, ownerID kernel.UUID) (*credits.Balance, error) {
	return r.getByOwner(ctx, ownerID, true)
}

func (r *GormCreditsRepository) getByOwner(ctx context.Context, ownerID kernel.UUID, forUpdate bool) (*credits.Balance, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto CreditsDTO
	if err := db.First(&dto, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ownerID", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// isUniqueViolation reports whether the error is a postgres unique constraint
// violation, either translated by GORM or raised by the driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
