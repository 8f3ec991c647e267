// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"os"
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Metadata is the PGN header block attached to every archived game.
type Metadata struct {
	Event string
	Site  string
	Round int

	White string
	Black string

	// YYYY.MM.DD
	Date string
}

// Archive appends the finished game to the dataset file as one PGN
// record followed by a blank-line separator, creating the file if
// absent. The record is fully serialized before the file is touched so
// a write fault never leaves a partial record behind.
func Archive(path string, game *chess.Game, meta Metadata) error {
	game.AddTagPair("Event", meta.Event)
	game.AddTagPair("Site", meta.Site)
	game.AddTagPair("Round", strconv.Itoa(meta.Round))
	game.AddTagPair("White", meta.White)
	game.AddTagPair("Black", meta.Black)
	game.AddTagPair("Date", meta.Date)

	record := strings.TrimRight(game.String(), "\n") + "\n\n"

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "open dataset")
	}
	defer file.Close()

	if _, err := file.WriteString(record); err != nil {
		return errors.Wrap(err, "append game")
	}

	return nil
}
