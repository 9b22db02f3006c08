package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisposeAllInvokesEachOnce(t *testing.T) {
	m := NewManager()

	calls := make(map[string]int)
	m.Track(func() { calls["a"]++ })
	m.Track(func() { calls["b"]++ })

	assert.Equal(t, 2, m.Active())

	m.DisposeAll()
	m.DisposeAll()

	assert.Equal(t, 1, calls["a"])
	assert.Equal(t, 1, calls["b"])
	assert.Equal(t, 0, m.Active())
}

func TestTrackNilIsIgnored(t *testing.T) {
	m := NewManager()
	m.Track(nil)

	assert.Equal(t, 0, m.Active())
	m.DisposeAll()
}

func TestDisposeAllSurvivesPanickingDisposer(t *testing.T) {
	m := NewManager()

	called := false
	m.Track(func() { panic("listener already gone") })
	m.Track(func() { called = true })

	assert.NotPanics(t, func() { m.DisposeAll() })
	assert.True(t, called)
}

func TestManagerReusableAfterDispose(t *testing.T) {
	m := NewManager()

	first := 0
	m.Track(func() { first++ })
	m.DisposeAll()

	second := 0
	m.Track(func() { second++ })
	m.DisposeAll()

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
