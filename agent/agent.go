package agent

import (
	"gametree/game"
	"gametree/searcher"
)

type Agent[M, P comparable] interface {
	// FindMove returns a legal move for the player to move in pos and performance metrics (if
	// collected) from the search behind it
	FindMove(pos game.Position[M, P]) (M, searcher.SearchMetric, error)
}
