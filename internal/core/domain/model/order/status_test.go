package order_test

import (
	"testing"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want order.Status
	}{
		{"new", order.New},
		{"in_progress", order.InProgress},
		{" DONE ", order.Done},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := order.ParseStatus(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}

	t.Run("should reject unknown", func(t *testing.T) {
		_, err := order.ParseStatus("unknown")

		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.Statuses() {
		require.NoError(t, s.Validate())
	}
	require.ErrorIs(t, order.Unknown.Validate(), order.ErrInvalidStatus)
	require.ErrorIs(t, order.Status(7).Validate(), order.ErrInvalidStatus)
	assert.Equal(t, "unknown", order.Status(7).String())
}

func TestAction_TargetStatus(t *testing.T) {
	s, ok := order.ActionMarkInProgress.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, order.InProgress, s)

	_, ok = order.ActionTake.TargetStatus()
	assert.False(t, ok)
	assert.Equal(t, "rate", order.ActionRate.String())
}

func TestParseServiceType(t *testing.T) {
	st, err := order.ParseServiceType("Consultation")
	require.NoError(t, err)
	assert.Equal(t, order.Consultation, st)

	_, err = order.ParseServiceType("plumbing")
	require.Error(t, err)
	require.ErrorIs(t, order.UnknownServiceType.Validate(), errs.ErrValueIsInvalid)
}
