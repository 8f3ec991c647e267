// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Spinner charset used while a player is thinking.
const SPIN = 31

// Player produces the next move for the side to move in a game.
type Player interface {
	Name() string
	NextMove(ctx context.Context, game *chess.Game) (*chess.Move, error)
}

// enginePlayer adapts the uci Engine to the Player interface.
type enginePlayer struct {
	engine *Engine
	name   string
}

func (player *enginePlayer) Name() string {
	return player.name
}

func (player *enginePlayer) NextMove(ctx context.Context, game *chess.Game) (*chess.Move, error) {
	token, err := player.engine.BestMove(game.Position().String())
	if err != nil {
		return nil, err
	}

	move, err := chess.UCINotation{}.Decode(game.Position(), token)
	if err != nil {
		return nil, errors.Wrapf(err, "engine played unparseable move %q", token)
	}

	return move, nil
}

// Result is a finished game's outcome along with the rules condition
// that produced it.
type Result struct {
	Outcome chess.Outcome
	Reason  string
}

func (result Result) String() string {
	switch result.Outcome {
	case chess.WhiteWon, chess.BlackWon:
		return fmt.Sprintf("%s by %s", result.Outcome, result.Reason)
	case chess.Draw:
		return fmt.Sprintf("Draw by %s", result.Reason)
	}

	return "ongoing"
}

func resultOf(game *chess.Game) Result {
	var reason string
	switch game.Method() {
	case chess.Checkmate:
		reason = "Checkmate"
	case chess.Stalemate:
		reason = "Stalemate"
	case chess.FivefoldRepetition, chess.ThreefoldRepetition:
		reason = "Repetition"
	case chess.SeventyFiveMoveRule, chess.FiftyMoveRule:
		reason = "Move Rule"
	case chess.InsufficientMaterial:
		reason = "Insufficient Material"
	case chess.Resignation:
		reason = "Resignation"
	default:
		reason = "Rules"
	}

	return Result{Outcome: game.Outcome(), Reason: reason}
}

// Play drives one complete game between the configured engine (White)
// and the model (Black), starting from the given position (standard
// starting position when empty). The engine process is started before
// the game loop and killed on every exit path. Engine faults are fatal
// to the game; the Negotiator cannot fault.
func Play(ctx context.Context, config *Config, source ProposalSource, startFEN string) (*chess.Game, Result, error) {
	var options []func(*chess.Game)
	if startFEN != "" {
		option, err := chess.FEN(startFEN)
		if err != nil {
			return nil, Result{}, errors.Wrapf(err, "bad starting position %q", startFEN)
		}

		options = append(options, option)
	}

	game := chess.NewGame(options...)

	engine, err := StartEngine(config.Engine)
	if err != nil {
		return nil, Result{}, errors.Wrap(err, "start engine")
	}
	defer engine.Kill()

	white := &enginePlayer{engine: engine, name: config.Engine.Name}
	black := NewNegotiator(config.Model.Name, source, config.Retries)

	if err := playGame(ctx, game, white, black); err != nil {
		return game, Result{}, err
	}

	return game, resultOf(game), nil
}

// playGame is the turn loop: the side to move's player is queried, the
// move applied, and terminality re-evaluated, until the board reports
// an outcome.
func playGame(ctx context.Context, game *chess.Game, white, black Player) error {
	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)
	defer s.Stop()

	for game.Outcome() == chess.NoOutcome {
		player := black
		if game.Position().Turn() == chess.White {
			player = white
		}

		moveNumber := len(game.Moves())/2 + 1
		logrus.Infof("Move %d: %s is thinking...\n", moveNumber, player.Name())

		s.Start()
		move, err := player.NextMove(ctx, game)
		s.Stop()

		if err != nil {
			return errors.Wrapf(err, "%s failed to move", player.Name())
		}

		notation := chess.UCINotation{}.Encode(game.Position(), move)
		if err := game.Move(move); err != nil {
			return errors.Wrapf(err, "%s played illegal move %s", player.Name(), notation)
		}

		logrus.Infof("%s played: \x1b[33m%s\x1b[0m\n", player.Name(), notation)
	}

	return nil
}
