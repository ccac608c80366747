package queries_test

import (
	"testing"

	"relaypost/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveryStatsQuery_Valid(t *testing.T) {
	query := queries.NewGetDeliveryStatsQuery()
	require.NoError(t, query.Validate())
}

func TestGetDeliveryStatsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDeliveryStatsQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDeliveryStatsQueryIsNotConstructed)
}
