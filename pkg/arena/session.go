// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"
)

// Session plays a configured number of games between the engine and the
// model, archiving every finished game and keeping score from the
// model's side.
type Session struct {
	Config *Config
	Source ProposalSource

	openings *Book

	// Score from the model's perspective.
	Wins, Losses, Draws int
}

func NewSession(config *Config, source ProposalSource) (*Session, error) {
	session := &Session{Config: config, Source: source}

	if config.Openings.File != "" {
		var err error
		session.openings, err = NewBook(config.Openings.File, config.Openings.Order)
		if err != nil {
			return nil, err
		}
	}

	return session, nil
}

func (session *Session) Run(ctx context.Context) error {
	for number := 1; number <= session.Config.Games; number++ {
		startFEN := ""
		if session.openings != nil {
			startFEN = session.openings.Current()
		}

		logrus.Infof(
			"\x1b[33mStarting\x1b[0m Game #%d: %s vs %s\n",
			number,
			session.Config.Engine.Name,
			session.Config.Model.Name,
		)

		game, result, err := Play(ctx, session.Config, session.Source, startFEN)
		if err != nil {
			return err
		}

		session.record(result)

		logrus.Infof(
			"\x1b[32mFinished\x1b[0m Game #%d: %s vs %s: %s\n",
			number,
			session.Config.Engine.Name,
			session.Config.Model.Name,
			result,
		)

		err = Archive(session.Config.PGNOut, game, Metadata{
			Event: session.Config.Event,
			Site:  session.Config.Site,
			Round: number,
			White: session.Config.Engine.Name,
			Black: session.Config.Model.Name,
			Date:  time.Now().Format("2006.01.02"),
		})
		if err != nil {
			return err
		}

		logrus.Infof("Game saved to %s\n", session.Config.PGNOut)

		if session.openings != nil {
			session.openings.Next()
		}

		if number%5 == 0 && number < session.Config.Games {
			session.Report()
		}
	}

	session.Report()
	return nil
}

func (session *Session) record(result Result) {
	switch result.Outcome {
	case chess.BlackWon:
		session.Wins++
	case chess.WhiteWon:
		session.Losses++
	default:
		session.Draws++
	}
}

func (session *Session) Report() {
	rows := []struct {
		name                string
		wins, losses, draws int
	}{
		{session.Config.Engine.Name, session.Losses, session.Wins, session.Draws},
		{session.Config.Model.Name, session.Wins, session.Losses, session.Draws},
	}

	fmt.Println("╔══════════════════════════════════════════════════════════╗")
	fmt.Println("║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Println("╠══════════════════════════════════════════════════════════╣")
	for i, row := range rows {
		lower, elo, upper := Elo(row.wins, row.draws, row.losses)

		fmt.Printf(
			"║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n",
			i+1, row.name,
			elo, math.Abs(math.Max(upper-elo, elo-lower)),
			row.wins, row.losses, row.draws,
			row.wins+row.losses+row.draws)
	}
	fmt.Println("╚══════════════════════════════════════════════════════════╝")
}
