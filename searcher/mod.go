package searcher

import (
	"errors"
	"gametree/game"
	"math"

	"github.com/rs/zerolog/log"
)

var ErrNoLegalMove = errors.New("no legal move")

var dummy = NewDummyCollector()

type Option func(c *config)

type config struct {
	metrics   Collector
	reference bool
}

// WithMetrics counts visited nodes, evaluations and cutoffs for every search.
func WithMetrics() Option {
	return func(c *config) {
		c.metrics = NewCollector()
	}
}

// WithCollector reports search metrics to collector.
func WithCollector(collector Collector) Option {
	return func(c *config) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

// WithReference scores root moves with unpruned minimax instead of alpha-beta.
func WithReference() Option {
	return func(c *config) {
		c.reference = true
	}
}

type Result[M comparable] struct {
	Move  M
	Score float64
	SearchMetric
}

// Searcher picks moves for the player to move by looking depth plies past each root move.
type Searcher[M, P comparable] struct {
	config
	depth int
}

func New[M, P comparable](depth int, options ...Option) *Searcher[M, P] {
	if depth < 0 {
		panic("search depth must not be negative")
	}
	s := &Searcher[M, P]{ // Default values
		config: config{metrics: dummy},
		depth:  depth,
	}
	for _, option := range options {
		option(&s.config)
	}
	return s
}

func (s *Searcher[M, P]) Depth() int {
	return s.depth
}

// Search scores every legal move of root from the perspective of root.Turn() and returns the
// first move, in LegalMoves order, with the highest score. Every root move is searched with
// the full window, so at depth 0 each child is still evaluated once.
//
// The caller is expected to have ruled out terminal roots; a root without legal moves yields
// ErrNoLegalMove.
func (s *Searcher[M, P]) Search(root game.Position[M, P]) (Result[M], error) {
	moves := root.LegalMoves()
	if len(moves) == 0 {
		return Result[M]{}, ErrNoLegalMove
	}

	s.metrics.Start(s.depth)
	player := root.Turn()
	alpha, beta := math.Inf(-1), math.Inf(1)

	best := Result[M]{Move: moves[0], Score: math.Inf(-1)}
	for _, move := range moves {
		var score float64
		if s.reference {
			score = minimax(root.Play(move), false, player, s.depth, s.metrics)
		} else {
			score = alphaBeta(root.Play(move), false, player, s.depth, alpha, beta, s.metrics)
		}
		log.Debug().Msgf("root move %v scored %.3f at depth %d", move, score, s.depth)

		// Strictly greater: the earliest move wins ties
		if score > best.Score {
			best.Score = score
			best.Move = move
		}
	}

	best.SearchMetric = s.metrics.Complete()
	log.Debug().Msgf("best move %v scored %.3f (nodes=%d evaluations=%d cutoffs=%d)",
		best.Move, best.Score, best.Nodes, best.Evaluations, best.Cutoffs)
	return best, nil
}

// BestMove returns the move an alpha-beta search of depth plies prefers for root.Turn().
func BestMove[M, P comparable](root game.Position[M, P], depth int) (M, error) {
	result, err := New[M, P](depth).Search(root)
	return result.Move, err
}

// BestMoveMinimax is BestMove scored by unpruned minimax. For the same inputs both return
// the same move.
func BestMoveMinimax[M, P comparable](root game.Position[M, P], depth int) (M, error) {
	result, err := New[M, P](depth, WithReference()).Search(root)
	return result.Move, err
}
