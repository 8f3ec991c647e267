// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRecordsFromModelSide(t *testing.T) {
	session := &Session{Config: DefaultConfig()}

	session.record(Result{Outcome: chess.BlackWon})
	session.record(Result{Outcome: chess.WhiteWon})
	session.record(Result{Outcome: chess.WhiteWon})
	session.record(Result{Outcome: chess.Draw})

	assert.Equal(t, 1, session.Wins, "the model plays Black")
	assert.Equal(t, 2, session.Losses)
	assert.Equal(t, 1, session.Draws)
}

func TestNewSessionWithOpenings(t *testing.T) {
	config := DefaultConfig()
	config.Openings.File = writeBook(t)

	session, err := NewSession(config, &scriptedSource{replies: []string{"e7e5"}})
	require.NoError(t, err)
	require.NotNil(t, session.openings)
	assert.Equal(t, fenSicilian, session.openings.Current())
}

func TestNewSessionMissingOpenings(t *testing.T) {
	config := DefaultConfig()
	config.Openings.File = "does-not-exist.fen"

	_, err := NewSession(config, &scriptedSource{})
	require.Error(t, err)
}
