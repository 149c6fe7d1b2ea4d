package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"academy-assistant/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyPathways(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../../configs/pathways.json")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "pathways.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestValidateRegistry_ShippedFile(t *testing.T) {
	n, err := validateRegistry("../../../configs/pathways.json")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAddKeyword(t *testing.T) {
	path := copyPathways(t)

	require.NoError(t, addKeyword(path, "player", "  Striker Trials "))
	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Contains(t, reg.Pathways[0].Keywords, "striker trials")
	assert.NotEmpty(t, reg.LastUpdated)

	assert.Error(t, addKeyword(path, "player", "striker trials"))
	assert.Error(t, addKeyword(path, "referee", "whistle"))
}

func TestUpdatePathway(t *testing.T) {
	path := copyPathways(t)

	require.NoError(t, updatePathway(path, "coach", "displayName", "Coach Pathway"))
	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "Coach Pathway", reg.Pathways[1].DisplayName)

	assert.EqualError(t, updatePathway(path, "coach", "userType", "superstar"), "invalid userType: superstar")
	assert.EqualError(t, updatePathway(path, "coach", "colour", "red"), "unknown field: colour")

	_, err = validateRegistry(path)
	assert.NoError(t, err)
}

func TestValidateRegistry_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no pathways", body: `{"version":"1.0.0","pathways":[]}`},
		{name: "missing indicator", body: `{"pathways":[{"id":"player","displayName":"P","keywords":["player"],"userType":"new_player"}]}`},
		{name: "bad user type", body: `{"pathways":[{"id":"player","displayName":"P","indicator":"i","keywords":["player"],"userType":"vip"}]}`},
		{name: "unbound pathway", body: `{"pathways":[{"id":"referee","displayName":"R","indicator":"i","keywords":["ref"],"userType":"new_player"}]}`},
		{name: "malformed", body: `{"pathways":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pathways.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			_, err := validateRegistry(path)
			assert.Error(t, err)
		})
	}
}

func TestHelp(t *testing.T) {
	var buf bytes.Buffer
	help(&buf)

	out := buf.String()
	assert.Contains(t, out, "Usage: pathway-updater <command> [flags]")
	for _, cmd := range []string{"keyword", "update", "validate", "help"} {
		assert.Contains(t, out, "\n  "+cmd+" ")
	}
	assert.NotContains(t, out, "\n\n\n")
}
