package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	for _, name := range []string{"a", "c", "e"} {
		assert.True(t, m.Enabled(name, "dev@campus.edu"), name)
	}
	for _, name := range []string{"b", "d", "f", "missing"} {
		assert.False(t, m.Enabled(name, "dev@campus.edu"), name)
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,junk=abc%")

	assert.True(t, m.Enabled("always", "a@campus.edu"))
	assert.True(t, m.Global("always"))
	assert.False(t, m.Enabled("never", "a@campus.edu"))
	assert.False(t, m.Enabled("junk", "a@campus.edu"))

	first := m.Enabled("canary", "someone@campus.edu")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", " SOMEONE@campus.edu "), "rollout must be deterministic per subject")
	}

	assert.False(t, m.Enabled("canary", ""), "percentage rollout requires a subject")
	assert.False(t, m.Global("canary"))
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,X=on, y = 20% ,z=off ")

	raw := m.Raw()
	assert.Len(t, raw, 3)
	assert.Equal(t, map[string]string{"x": "on", "y": "20%", "z": "off"}, raw)

	snap := m.Snapshot("user@campus.edu")
	assert.Len(t, snap, 3)
	assert.True(t, snap["x"])
	assert.False(t, snap["z"])
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(LegacyOpenEdit, "a@campus.edu"))
	assert.Empty(t, m.Raw())
	assert.Empty(t, m.Snapshot(""))
}
