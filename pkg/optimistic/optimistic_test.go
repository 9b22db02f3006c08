package optimistic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoKeepsForwardOnSuccess(t *testing.T) {
	count := 0

	err := Do(
		func() { count++ },
		func() { count-- },
		func() error { return nil },
	)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDoRevertsOnFailure(t *testing.T) {
	count := 0
	writeErr := errors.New("store unavailable")

	err := Do(
		func() { count++ },
		func() { count-- },
		func() error { return writeErr },
	)

	assert.Equal(t, writeErr, err)
	assert.Equal(t, 0, count)
}

func TestDoAppliesForwardBeforeWrite(t *testing.T) {
	var order []string

	Do(
		func() { order = append(order, "forward") },
		func() { order = append(order, "inverse") },
		func() error { order = append(order, "write"); return nil },
	)

	assert.Equal(t, []string{"forward", "write"}, order)
}
