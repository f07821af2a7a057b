// Package creditsrepo provides data transfer objects and mapping functions for
// balance persistence. A unique index on the owner guarantees at most one
// balance row per account.
package creditsrepo

import (
	"time"

	"goby/internal/core/domain/model/credits"
	"goby/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditsDTO represents the database structure for persisting balance aggregates.
type CreditsDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for balance entities.
func (CreditsDTO) TableName() string {
	return "credits"
}

// fromDomain converts a balance domain aggregate to its database representation.
func fromDomain(aggregate *credits.Balance) CreditsDTO {
	return CreditsDTO{
		ID:      aggregate.ID().Bytes(),
		OwnerID: aggregate.OwnerID().Bytes(),
		Amount:  aggregate.Amount(),
	}
}

// toDomain converts a database DTO to a balance domain aggregate.
func toDomain(dto CreditsDTO) (*credits.Balance, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return credits.RestoreBalance(id, ownerID, dto.Amount)
}
