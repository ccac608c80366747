package codes_test

import (
	"strings"
	"testing"

	"relaypost/internal/adapters/out/codes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_ProducesCodeOfRequestedLength(t *testing.T) {
	generator := codes.NewGenerator(10)

	code, err := generator.Generate()

	require.NoError(t, err)
	assert.Len(t, code, 10)
}

func TestGenerator_Generate_DefaultsLength(t *testing.T) {
	generator := codes.NewGenerator(0)

	code, err := generator.Generate()

	require.NoError(t, err)
	assert.Len(t, code, codes.DefaultCodeLength)
}

func TestGenerator_Generate_UsesOnlyUnambiguousCharacters(t *testing.T) {
	generator := codes.NewGenerator(64)

	code, err := generator.Generate()

	require.NoError(t, err)
	for _, r := range code {
		assert.NotContains(t, "01OIL", string(r))
		assert.True(t, strings.ContainsRune("23456789ABCDEFGHJKMNPQRSTUVWXYZ", r),
			"unexpected character %q", r)
	}
}

func TestGenerator_Generate_CodesDiffer(t *testing.T) {
	generator := codes.NewGenerator(12)

	seen := make(map[string]bool)
	for range 20 {
		code, err := generator.Generate()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}
