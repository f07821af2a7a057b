package queries_test

import (
	"testing"

	"goby/internal/core/application/usecases/queries"
	"goby/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveryQuery_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetDeliveryQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, query.DeliveryID())
	assert.NoError(t, query.Validate())
}

func TestNewGetDeliveryQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetDeliveryQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetDeliveryQuery_ValidateZeroValue(t *testing.T) {
	query := queries.GetDeliveryQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetDeliveryQueryIsNotConstructed)
}

func TestNewGetDeliveryLocationQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetDeliveryLocationQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetCreditsBalanceQuery_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetCreditsBalanceQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, query.OwnerID())
}

func TestNewGetCreditsBalanceQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetCreditsBalanceQuery(kernel.UUID{})
	require.Error(t, err)
}
