package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	user, ok := Static("alice").Current()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)

	_, ok = Static("").Current()
	assert.False(t, ok)
}
