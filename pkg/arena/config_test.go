// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 3, config.Retries)
	assert.Equal(t, 1, config.Games)
	assert.Equal(t, "training_data.pgn", config.PGNOut)
	assert.Equal(t, 5, config.Engine.SkillLevel)
	assert.Equal(t, 0.1, config.Engine.MoveTime)
	assert.Equal(t, "gemini-1.5-flash", config.Model.ID)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  name: Stockfish Level 1
  cmd: /usr/bin/stockfish
  skill-level: 1
  move-time: 0.5
retries: 5
games: 10
`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/stockfish", config.Engine.Cmd)
	assert.Equal(t, 1, config.Engine.SkillLevel)
	assert.Equal(t, 0.5, config.Engine.MoveTime)
	assert.Equal(t, 5, config.Retries)
	assert.Equal(t, 10, config.Games)

	// untouched keys keep their defaults
	assert.Equal(t, "Gemini 1.5 Flash", config.Model.Name)
	assert.Equal(t, "Cyberchess Dojo", config.Event)
	assert.Equal(t, "training_data.pgn", config.PGNOut)
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [not a mapping"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	require.Error(t, config.Validate(), "the engine command has no default")

	config.Engine.Cmd = "/usr/bin/stockfish"
	require.NoError(t, config.Validate())

	config.Retries = 0
	require.Error(t, config.Validate())
	config.Retries = 3

	config.Engine.SkillLevel = 21
	require.Error(t, config.Validate())
	config.Engine.SkillLevel = 5

	config.Engine.MoveTime = 0
	require.Error(t, config.Validate())
}
