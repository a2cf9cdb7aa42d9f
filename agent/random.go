package agent

import (
	"gametree/game"
	"gametree/searcher"
	"sync"

	"golang.org/x/exp/rand"
)

type randomAgent[M, P comparable] struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly among the legal moves. Agents built
// with the same seed play the same moves.
func NewRandomAgent[M, P comparable](seed uint64) Agent[M, P] {
	return &randomAgent[M, P]{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[M, P]) FindMove(pos game.Position[M, P]) (M, searcher.SearchMetric, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		var none M
		return none, searcher.SearchMetric{}, searcher.ErrNoLegalMove
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return moves[a.rng.Intn(len(moves))], searcher.SearchMetric{}, nil
}
