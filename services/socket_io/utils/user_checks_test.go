package socketio_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidGameType(t *testing.T) {
	assert.True(t, ValidGameType("matching"))
	assert.True(t, ValidGameType("rhythm"))
	assert.True(t, ValidGameType("higherlower"))
	assert.True(t, ValidGameType("quiz"))

	assert.False(t, ValidGameType(""))
	assert.False(t, ValidGameType("poker"))
	assert.False(t, ValidGameType("Quiz"))
}

func TestValidPlayerStatus(t *testing.T) {
	assert.True(t, ValidPlayerStatus("playing"))
	assert.True(t, ValidPlayerStatus("finished"))
	assert.True(t, ValidPlayerStatus("gameover"))

	// Anything else must be rejected before it lands in the subtree
	assert.False(t, ValidPlayerStatus(""))
	assert.False(t, ValidPlayerStatus("winning"))
	assert.False(t, ValidPlayerStatus("Playing"))
}
