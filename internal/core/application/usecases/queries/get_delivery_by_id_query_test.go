package queries_test

import (
	"testing"

	"relaypost/internal/core/application/usecases/queries"
	"relaypost/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveryByIDQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetDeliveryByIDQuery(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.DeliveryID().IsEqual(id))
}

func TestNewGetDeliveryByIDQuery_EmptyID_ReturnsError(t *testing.T) {
	_, err := queries.NewGetDeliveryByIDQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetDeliveryByIDQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDeliveryByIDQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDeliveryByIDQueryIsNotConstructed)
}
