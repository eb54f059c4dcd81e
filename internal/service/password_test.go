package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sahilphalke/PlayTurf/internal/model"
)

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	// MinCost keeps the bcrypt work factor cheap in tests.
	hasher := NewPasswordHasher(4)

	t.Run("verifies the password it hashed", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		ok, err := hasher.Verify("secret123", hash)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("rejects a wrong password without error", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)

		ok, err := hasher.Verify("wrong", hash)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("salts every hash", func(t *testing.T) {
		first, err := hasher.Hash("secret123")
		require.NoError(t, err)
		second, err := hasher.Hash("secret123")
		require.NoError(t, err)

		require.NotEqual(t, first, second)

		ok, err := hasher.Verify("secret123", first)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = hasher.Verify("secret123", second)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("malformed hash is a crypto failure, not a mismatch", func(t *testing.T) {
		ok, err := hasher.Verify("secret123", "not-a-bcrypt-hash")
		require.False(t, ok)
		require.ErrorIs(t, err, model.ErrCryptoFailure)
	})

	t.Run("out-of-range cost falls back to the default", func(t *testing.T) {
		require.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).cost)
		require.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	})
}
