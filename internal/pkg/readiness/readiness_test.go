package readiness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWait(t *testing.T) {
	calls := 0
	err := Wait(context.Background(), time.Second, "fake", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWait_GivesUp(t *testing.T) {
	errDown := errors.New("down")
	err := Wait(context.Background(), 300*time.Millisecond, "fake", func(context.Context) error {
		return errDown
	})

	assert.ErrorIs(t, err, errDown)
}
