package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "7f1c")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "object not found: 7f1c", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("order", "7f1c", cause)

		assert.Equal(t, "object not found: param is: order, ID is: 7f1c (cause: connection reset)", err.Error())
		assert.Equal(t, cause, err.Cause)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	assert.Equal(t, "value is invalid: phone", errs.NewValueIsInvalidError("phone").Error())

	err := errs.NewValueIsInvalidErrorWithCause("phone", errors.New("too short"))
	assert.Equal(t, "value is invalid: phone (cause: too short)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("rating", 7, 1, 5)

		assert.Equal(t, "value is invalid: 7 is rating, min value is 1, max value is 5", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("appends cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("latitude", 91.5, -90, 90, errors.New("bad gps"))

		assert.Equal(t, "value is invalid: 91.5 is latitude, min value is -90, max value is 90 (cause: bad gps)", err.Error())
	})

	t.Run("strips newlines from value", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "line1\nline2", 0, 10)

		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "line1 line2")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	assert.Equal(t, "value is required: name", errs.NewValueIsRequiredError("name").Error())

	err := errs.NewValueIsRequiredErrorWithCause("name", errors.New("blank"))
	assert.Equal(t, "value is required: name (cause: blank)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load order: %w", errs.NewObjectNotFoundError("order", "x"))

	var nf *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &nf)
	assert.Equal(t, "x", nf.ID)
	require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
}
