package retry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func failingOp(calls *int) func() (string, error) {
	return func() (string, error) {
		*calls++
		return "", errBoom
	}
}

func TestDo_SingleAttemptFailsOnce(t *testing.T) {
	calls := 0

	_, err := Do(Always, 1, failingOp(&calls))

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsOnThirdAttempt(t *testing.T) {
	calls := 0

	result, err := Do(Always, 5, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errBoom
		}
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	calls := 0

	_, err := Do(Always, DefaultAttempts, failingOp(&calls))

	assert.Same(t, errBoom, err)
	assert.Equal(t, DefaultAttempts, calls)
}

func TestDo_NonPositiveBudgetStillAttempts(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
	}{
		{name: "zero", maxAttempts: 0},
		{name: "negative", maxAttempts: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_, err := Do(Always, tt.maxAttempts, failingOp(&calls))

			assert.Error(t, err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestDo_StopsWhenPredicateRejects(t *testing.T) {
	calls := 0

	_, err := Do(IfExists, 5, failingOp(&calls))

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestDo_ReturnsZeroValueOnFailure(t *testing.T) {
	result, err := Do(Always, 2, func() (*int, error) {
		v := 7
		return &v, errBoom
	})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestIfExists(t *testing.T) {
	assert.True(t, IfExists(fs.ErrExist))
	assert.True(t, IfExists(&os.PathError{Op: "mkdir", Path: "/tmp/x", Err: os.ErrExist}))
	assert.True(t, IfExists(fmt.Errorf("wrapped: %w", fs.ErrExist)))
	assert.False(t, IfExists(fs.ErrPermission))
	assert.False(t, IfExists(errBoom))
}
