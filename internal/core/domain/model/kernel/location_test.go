package kernel_test

import (
	"testing"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("should create location within bounds", func(t *testing.T) {
		loc, err := kernel.NewLocation(41.311081, 69.240562)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.InDelta(t, 41.311081, loc.Latitude(), 1e-9)
		assert.InDelta(t, 69.240562, loc.Longitude(), 1e-9)
		assert.Equal(t, "41.311081,69.240562", loc.String())
		assert.Equal(t, "https://maps.google.com/?q=41.311081,69.240562", loc.MapURL())
	})

	t.Run("should accept boundary values", func(t *testing.T) {
		_, err := kernel.NewLocation(-90, 180)

		require.NoError(t, err)
	})

	t.Run("should report both coordinates out of range", func(t *testing.T) {
		_, err := kernel.NewLocation(91, -181)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(1, 2)
	b, _ := kernel.NewLocation(1, 2)
	c, _ := kernel.NewLocation(2, 1)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = a.IsEqual(kernel.Location{})
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}
