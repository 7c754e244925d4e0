package worker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouterDispatchesToAllHandlers(t *testing.T) {
	calls := 0
	router := NewRouter(map[string][]EventHandler{
		"a": {
			func(data []byte) error { calls++; return nil },
			func(data []byte) error { calls++; return nil },
		},
	})

	assert.NoError(t, router.Handle("a", nil))
	assert.Equal(t, 2, calls)
}

func TestRouterSkipsUnroutedEvents(t *testing.T) {
	router := NewRouter(map[string][]EventHandler{})
	assert.NoError(t, router.Handle("unknown", []byte("{}")))
}

func TestRouterStopsOnHandlerError(t *testing.T) {
	boom := errors.New("boom")
	reached := false
	router := NewRouter(map[string][]EventHandler{
		"a": {
			func(data []byte) error { return boom },
			func(data []byte) error { reached = true; return nil },
		},
	})

	assert.ErrorIs(t, router.Handle("a", nil), boom)
	assert.False(t, reached)
}
