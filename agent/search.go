package agent

import (
	"gametree/game"
	"gametree/searcher"
)

type searchAgent[M, P comparable] struct {
	searcher *searcher.Searcher[M, P]
}

// NewSearchAgent returns an agent that plays the move an alpha-beta search of depth plies
// prefers.
func NewSearchAgent[M, P comparable](depth int, options ...searcher.Option) Agent[M, P] {
	return searchAgent[M, P]{searcher: searcher.New[M, P](depth, options...)}
}

func (a searchAgent[M, P]) FindMove(pos game.Position[M, P]) (M, searcher.SearchMetric, error) {
	result, err := a.searcher.Search(pos)
	if err != nil {
		var none M
		return none, searcher.SearchMetric{}, err
	}
	return result.Move, result.SearchMetric, nil
}
