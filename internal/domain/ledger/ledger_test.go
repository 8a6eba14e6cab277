package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-mmg/internal/domain"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid("777"))
	assert.True(t, Valid("000123"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("LED-1"))
	assert.False(t, Valid("12 3"))
}

func TestNormalize(t *testing.T) {
	s, err := Normalize("  777 ")
	require.NoError(t, err)
	assert.Equal(t, "777", s)

	s, err = Normalize("")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = Normalize("ABC")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGenerator_UniqueAndNumeric(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := NewGeneratorWithClock(func() time.Time { return fixed })

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		n := g.Next()
		require.True(t, Valid(n), n)
		require.False(t, seen[n], "repetido: %s", n)
		seen[n] = true
	}
	assert.Equal(t, "1700000000000001", NewGeneratorWithClock(func() time.Time { return fixed }).Next())
}
