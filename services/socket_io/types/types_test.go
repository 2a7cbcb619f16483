package socketio_types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisconnectHooksRunOnce(t *testing.T) {
	sio := NewSocketServer()

	calls := 0
	sio.RegisterDisconnectHook("alice", "lobby:quiz", func() { calls++ })

	sio.RunDisconnectHooks("alice")
	assert.Equal(t, 1, calls)

	// Hooks are popped, a second run must not fire them again
	sio.RunDisconnectHooks("alice")
	assert.Equal(t, 1, calls)
}

func TestDisconnectHookReplacedUnderSameKey(t *testing.T) {
	sio := NewSocketServer()

	first, second := 0, 0
	sio.RegisterDisconnectHook("bob", "invite:alice", func() { first++ })
	sio.RegisterDisconnectHook("bob", "invite:alice", func() { second++ })

	sio.RunDisconnectHooks("bob")
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestUnregisterDisarmsHook(t *testing.T) {
	sio := NewSocketServer()

	calls := 0
	sio.RegisterDisconnectHook("carol", "lobby:rhythm", func() { calls++ })
	sio.RegisterDisconnectHook("carol", "invite:dave", func() { calls++ })
	sio.UnregisterDisconnectHook("carol", "lobby:rhythm")

	sio.RunDisconnectHooks("carol")
	assert.Equal(t, 1, calls)
}

func TestRunDisconnectHooksUnknownUser(t *testing.T) {
	sio := NewSocketServer()

	assert.NotPanics(t, func() {
		sio.RunDisconnectHooks("nobody")
	})
}

func TestHooksAreIndependentPerUser(t *testing.T) {
	sio := NewSocketServer()

	aliceCalls, bobCalls := 0, 0
	sio.RegisterDisconnectHook("alice", "lobby:quiz", func() { aliceCalls++ })
	sio.RegisterDisconnectHook("bob", "lobby:quiz", func() { bobCalls++ })

	sio.RunDisconnectHooks("alice")
	assert.Equal(t, 1, aliceCalls)
	assert.Equal(t, 0, bobCalls)
}
