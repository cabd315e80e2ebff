package errors

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	assert.Equal(t, ErrCodeInvalidInput, err.Code)
	assert.Equal(t, "test message: value", err.Message)
	assert.Equal(t, "INVALID_INPUT: test message: value", err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidFormat, cause, "decode points")

	assert.Equal(t, ErrCodeInvalidFormat, err.Code)
	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "INVALID_FORMAT: decode points: underlying error", err.Error())
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidPoint, "x"), ErrCodeInvalidPoint, true},
		{"different code", New(ErrCodeInvalidPoint, "x"), ErrCodeInvalidTolerance, false},
		{"wrapped by fmt", fmt.Errorf("build: %w", New(ErrCodeInvalidTolerance, "x")), ErrCodeInvalidTolerance, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Is(tt.err, tt.code))
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeCanceled, "search stopped"))
	assert.Equal(t, ErrCodeCanceled, GetCode(err))
	assert.Equal(t, "search stopped", UserMessage(err))

	plain := errors.New("boom")
	assert.Equal(t, Code(""), GetCode(plain))
	assert.Equal(t, "boom", UserMessage(plain))
}

func TestValidateTolerance(t *testing.T) {
	for _, eps := range []float64{1e-12, 1e-9, 0.25} {
		require.NoError(t, ValidateTolerance(eps), "eps=%g", eps)
	}
	for _, eps := range []float64{0, -1e-9, MaxTolerance, 3, math.NaN(), math.Inf(1)} {
		err := ValidateTolerance(eps)
		require.Error(t, err, "eps=%g", eps)
		assert.True(t, Is(err, ErrCodeInvalidTolerance))
	}
}

func TestValidateCoordinate(t *testing.T) {
	require.NoError(t, ValidateCoordinate(0, "x", 1.5))

	err := ValidateCoordinate(3, "y", math.Inf(-1))
	require.Error(t, err)
	assert.True(t, Is(err, ErrCodeInvalidPoint))
	assert.Contains(t, err.Error(), "point 3")
}

func TestValidateColorCount(t *testing.T) {
	require.NoError(t, ValidateColorCount(0))
	require.NoError(t, ValidateColorCount(7))
	assert.True(t, Is(ValidateColorCount(-1), ErrCodeInvalidArgument))
}
