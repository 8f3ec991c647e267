// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/notnil/chess"
	"github.com/sirupsen/logrus"
)

// Negotiator turns the model's free-form replies into a guaranteed
// legal move. Each turn it prompts the ProposalSource with the position
// and its legal moves, validates the reply, and feeds mistakes back
// into the prompt for the next round. After exhausting its rounds it
// plays a random legal move so the game always makes progress.
type Negotiator struct {
	name    string
	source  ProposalSource
	retries int
	rand    *rand.Rand
}

func NewNegotiator(name string, source ProposalSource, retries int) *Negotiator {
	if retries < 1 {
		retries = 1
	}

	return &Negotiator{
		name:    name,
		source:  source,
		retries: retries,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (negotiator *Negotiator) Name() string {
	return negotiator.name
}

// NextMove implements Player. It never fails: the fallback move is
// drawn from the same legal move set the proposals are validated
// against.
func (negotiator *Negotiator) NextMove(ctx context.Context, game *chess.Game) (*chess.Move, error) {
	return negotiator.Negotiate(ctx, game), nil
}

// round verdicts
type verdict uint8

const (
	verdictLegal verdict = iota
	verdictIllegal
	verdictUnparseable
	verdictFault
)

// Negotiate runs the proposal protocol for one turn and returns a move
// legal in the game's current position. The game itself is never
// mutated.
func (negotiator *Negotiator) Negotiate(ctx context.Context, game *chess.Game) *chess.Move {
	legal := game.ValidMoves()
	negotiation := newNegotiation(game.Position(), legal)

	for attempt := 0; attempt < negotiator.retries; attempt++ {
		raw, err := negotiator.source.Propose(ctx, negotiation.Prompt())
		if err != nil {
			// A source fault costs a round, like any bad reply.
			logrus.Infof("%s: proposal failed: %v, retrying\n", negotiator.name, err)
			negotiation.Feedback(verdictFault, "")
			continue
		}

		token := SanitizeToken(raw)

		switch move, v := negotiation.Judge(token); v {
		case verdictLegal:
			return move

		case verdictIllegal:
			logrus.Infof("%s tried illegal move %s, retrying\n", negotiator.name, token)
			negotiation.Feedback(verdictIllegal, token)

		default:
			logrus.Infof("%s replied with an unparseable move, retrying\n", negotiator.name)
			negotiation.Feedback(v, token)
		}
	}

	move := legal[negotiator.rand.Intn(len(legal))]
	logrus.Infof("%s failed to produce a legal move, playing %s\n", negotiator.name, move)
	return move
}

// token shape of a coordinate move: two squares plus an optional
// promotion letter. Looser than a real square pair on purpose, so that
// things like z9z9 read as illegal moves rather than format errors.
var tokenRegex = regexp.MustCompile(`^[a-z][0-9][a-z][0-9][a-z]?$`)

// SanitizeToken normalizes a raw model reply into a candidate move
// token: surrounding and internal whitespace is dropped, markdown
// emphasis characters are stripped, and the result is folded to lower
// case. Coordinate notation is treated as case-insensitive on input.
func SanitizeToken(raw string) string {
	var sb strings.Builder

	for _, r := range raw {
		if unicode.IsSpace(r) || r == '`' || r == '*' {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// negotiation is the transient per-turn state: the growing prompt and
// the legal move set the turn started with. Legality never changes
// across rounds within one turn.
type negotiation struct {
	prompt strings.Builder
	legal  map[string]*chess.Move
}

func newNegotiation(position *chess.Position, legal []*chess.Move) *negotiation {
	var negotiation negotiation

	moves := make([]string, len(legal))
	negotiation.legal = make(map[string]*chess.Move, len(legal))
	for i, move := range legal {
		notation := chess.UCINotation{}.Encode(position, move)
		moves[i] = notation
		negotiation.legal[notation] = move
	}

	fmt.Fprintf(&negotiation.prompt,
		"You are playing a game of chess against Stockfish. You are playing Black.\n"+
			"\n"+
			"Current board position (FEN): %s\n"+
			"\n"+
			"Here is the list of legally possible moves you can make:\n"+
			"%s\n"+
			"\n"+
			"Analyze the board and pick the best move from the legal list above.\n"+
			"\n"+
			"IMPORTANT: Reply ONLY with the move in UCI format (e.g. e7e5). Do not write any other text.",
		position.String(), strings.Join(moves, ", "),
	)

	return &negotiation
}

func (negotiation *negotiation) Prompt() string {
	return negotiation.prompt.String()
}

// Judge classifies a sanitized token against the turn's legal move set.
func (negotiation *negotiation) Judge(token string) (*chess.Move, verdict) {
	if !tokenRegex.MatchString(token) {
		return nil, verdictUnparseable
	}

	if move, found := negotiation.legal[token]; found {
		return move, verdictLegal
	}

	return nil, verdictIllegal
}

// Feedback appends a corrective line for the round's failure to the
// prompt. Feedback is never reset: every retry sees the full history
// of the turn's mistakes.
func (negotiation *negotiation) Feedback(v verdict, token string) {
	switch v {
	case verdictIllegal:
		fmt.Fprintf(&negotiation.prompt,
			"\n\nERROR: %s is not a legal move. Please choose strictly from the provided list.",
			token,
		)
	default:
		negotiation.prompt.WriteString(
			"\n\nERROR: Invalid format. Please reply ONLY with the move string (e.g. e7e5).",
		)
	}
}
