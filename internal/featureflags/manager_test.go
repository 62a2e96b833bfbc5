package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_OnOff(t *testing.T) {
	m := NewManager("dms=on,reactions=off,threads=true,legacy=0")

	assert.True(t, m.Enabled("dms", 1))
	assert.False(t, m.Enabled("reactions", 1))
	assert.True(t, m.Enabled("threads", 1))
	assert.False(t, m.Enabled("legacy", 1))
}

func TestManager_UnknownFlagDefaultsOn(t *testing.T) {
	m := NewManager("dms=off")
	assert.True(t, m.Enabled("reactions", 1))

	var nilManager *Manager
	assert.True(t, nilManager.Enabled("anything", 1))
}

func TestManager_PercentRollout(t *testing.T) {
	m := NewManager("beta=50%")

	// Deterministic per user: same answer on every call.
	for user := uint64(1); user <= 20; user++ {
		first := m.Enabled("beta", user)
		assert.Equal(t, first, m.Enabled("beta", user))
	}

	assert.True(t, NewManager("beta=100%").Enabled("beta", 1))
	assert.False(t, NewManager("beta=0%").Enabled("beta", 1))
	// Anonymous users never fall inside a partial rollout.
	assert.False(t, NewManager("beta=50%").Enabled("beta", 0))
}

func TestManager_MalformedInput(t *testing.T) {
	m := NewManager("  , dms = ON ,bad,=x,beta=nonsense")

	assert.True(t, m.Enabled("dms", 1))
	assert.False(t, m.Enabled("beta", 1))
	assert.Len(t, m.Raw(), 2)
}
