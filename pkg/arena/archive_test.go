// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedGame(t *testing.T) *chess.Game {
	t.Helper()

	game := chess.NewGame()
	mustMove(t, game, "f2f3", "e7e5", "g2g4", "d8h4")
	require.Equal(t, chess.BlackWon, game.Outcome())
	return game
}

func testMetadata(round int) Metadata {
	return Metadata{
		Event: "Cyberchess Dojo",
		Site:  "Arena",
		Round: round,
		White: "Stockfish Level 5",
		Black: "Gemini 1.5 Flash",
		Date:  "2026.08.31",
	}
}

func TestArchiveCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_data.pgn")

	require.NoError(t, Archive(path, finishedGame(t), testMetadata(1)))

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	record := string(first)
	assert.Contains(t, record, `[Event "Cyberchess Dojo"]`)
	assert.Contains(t, record, `[White "Stockfish Level 5"]`)
	assert.Contains(t, record, `[Black "Gemini 1.5 Flash"]`)
	assert.Contains(t, record, `[Date "2026.08.31"]`)
	assert.Contains(t, record, "0-1")
	assert.True(t, strings.HasSuffix(record, "\n\n"), "records are blank-line separated")

	require.NoError(t, Archive(path, finishedGame(t), testMetadata(2)))

	both, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(both), record),
		"appending must not mutate previously archived bytes")
	assert.Equal(t, 2, strings.Count(string(both), `[Event "Cyberchess Dojo"]`))
	assert.Contains(t, string(both), `[Round "2"]`)
}

func TestArchiveUnwritablePath(t *testing.T) {
	err := Archive(filepath.Join(t.TempDir(), "missing", "training_data.pgn"),
		finishedGame(t), testMetadata(1))
	require.Error(t, err)
}
