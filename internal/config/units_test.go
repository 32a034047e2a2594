package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
)

func TestParseUnitTables(t *testing.T) {
	tables, err := ParseUnitTables([]byte(`
damage:
  Virus: {AI: 8, Tech: 5}
repair:
  tech: {firewall: 1}
restricted: [AI, Firewall]
`))
	require.NoError(t, err)

	defaults := core.DefaultUnitTables()
	assert.Equal(t, 8, tables.Damage[core.UnitVirus][core.UnitAI])
	assert.Equal(t, 5, tables.Damage[core.UnitVirus][core.UnitTech])
	assert.Equal(t, defaults.Damage[core.UnitTech], tables.Damage[core.UnitTech], "untouched rows keep defaults")
	assert.Equal(t, 1, tables.Repair[core.UnitTech][core.UnitFirewall])
	assert.True(t, tables.Restricted[core.UnitAI])
	assert.False(t, tables.Restricted[core.UnitProgram])
	assert.True(t, tables.Restricted[core.UnitFirewall])
}

func TestParseUnitTables_Empty(t *testing.T) {
	tables, err := ParseUnitTables(nil)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultUnitTables(), tables)
}

func TestParseUnitTables_Errors(t *testing.T) {
	tests := map[string]struct {
		yaml  string
		field string
	}{
		"unknown attacker type": {"damage:\n  Tank: {AI: 1}\n", "units.damage"},
		"unknown target type":   {"repair:\n  Tech: {Tank: 1}\n", "units.repair"},
		"out of range":          {"damage:\n  AI: {AI: 12}\n", "units.damage"},
		"negative repair":       {"repair:\n  AI: {Tech: -1}\n", "units.repair"},
		"unknown restricted":    {"restricted: [Tank]\n", "units.restricted"},
		"unknown key":           {"armor:\n  AI: {AI: 1}\n", "game.units_file"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseUnitTables([]byte(tt.yaml))
			var ce *core.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestLoadUnitTables_MissingFile(t *testing.T) {
	_, err := LoadUnitTables(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
