package engine

import (
	"fmt"
	"gametree/agent"
	"gametree/game"
	"gametree/searcher"
	"gametree/utils"
	"time"

	"github.com/rs/zerolog/log"
)

type Turn[M, P comparable] struct {
	Step   int
	Player P
	Move   M
	searcher.SearchMetric
	Elapsed time.Duration
}

type Outcome[M, P comparable] struct {
	Winner    P
	Decided   bool // A player won
	Draw      bool // No legal moves left without a winner
	Turns     []Turn[M, P]
	Final     game.Position[M, P]
	StartTime time.Time
	EndTime   time.Time
}

// Engine plays a match between two agents on a local position.
type Engine[M, P comparable] struct {
	config
	Position game.Position[M, P]
	Agents   map[P]agent.Agent[M, P]
}

func LocalEngine[M, P comparable](start game.Position[M, P], agents map[P]agent.Agent[M, P], options ...Option) *Engine[M, P] {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	if _, ok := agents[start.Turn()]; !ok {
		panic("no agent for the player to move")
	}

	e := &Engine[M, P]{
		config:   config{maxTurns: MaxTurns},
		Position: start,
		Agents:   agents,
	}
	for _, option := range options {
		option(&e.config)
	}
	return e
}

// Run executes the game loop until a player wins, the position is drawn or the turn cap is
// reached. An agent error or an illegal move ends the match with an error.
func (e *Engine[M, P]) Run() (Outcome[M, P], error) {
	outcome := Outcome[M, P]{StartTime: time.Now()}

	log.Info().Msgf("player %v is starting", e.Position.Turn())

	for step := 1; !game.IsOver(e.Position) && step <= e.maxTurns; step++ {
		player := e.Position.Turn()
		current, ok := e.Agents[player]
		if !ok {
			return outcome, fmt.Errorf("no agent for player %v", player)
		}

		start := time.Now()
		move, metric, err := current.FindMove(e.Position)
		if err != nil {
			return outcome, fmt.Errorf("player %v failed to find a move: %w", player, err)
		}
		if !utils.Contains(e.Position.LegalMoves(), move) {
			return outcome, fmt.Errorf("player %v: %w %v", player, game.ErrIllegalMove, move)
		}

		outcome.Turns = append(outcome.Turns, Turn[M, P]{
			Step:         step,
			Player:       player,
			Move:         move,
			SearchMetric: metric,
			Elapsed:      time.Since(start),
		})
		log.Info().Msgf("turn %d: player %v played %v", step, player, move)

		e.Position = e.Position.Play(move)
	}

	outcome.Final = e.Position
	outcome.EndTime = time.Now()
	switch {
	case e.Position.IsWin():
		outcome.Decided = true
		outcome.Winner = e.opponent(e.Position.Turn())
		log.Info().Msgf("game over after %d turns, winner: %v", len(outcome.Turns), outcome.Winner)
	case game.IsDraw(e.Position):
		outcome.Draw = true
		log.Info().Msgf("game drawn after %d turns", len(outcome.Turns))
	default:
		log.Info().Msgf("stopped after %d turns (no winner yet)", len(outcome.Turns))
	}
	return outcome, nil
}

// opponent returns the other player with an agent in this match.
func (e *Engine[M, P]) opponent(player P) P {
	for p := range e.Agents {
		if p != player {
			return p
		}
	}
	panic("match has a single player")
}
