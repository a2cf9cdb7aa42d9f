package searcher

import (
	"gametree/game"
	"math"
)

// AlphaBeta returns the value of pos for player to depth plies, skipping siblings that cannot
// change the result. Called with the full window (-Inf, +Inf) it returns exactly what Minimax
// returns for the same arguments, whatever order LegalMoves uses.
//
// alpha is the score the maximizing side is already guaranteed elsewhere in the tree and beta
// the score the minimizing side is guaranteed. Both are narrowed only inside this frame; a
// child sees the bounds as refined by its earlier siblings.
func AlphaBeta[M, P comparable](pos game.Position[M, P], maximizing bool, player P, depth int, alpha, beta float64) float64 {
	return alphaBeta(pos, maximizing, player, depth, alpha, beta, dummy)
}

func alphaBeta[M, P comparable](pos game.Position[M, P], maximizing bool, player P, depth int, alpha, beta float64, metrics Collector) float64 {
	metrics.AddNode()

	if depth <= 0 || pos.IsWin() {
		metrics.AddEvaluation()
		return pos.Evaluate(player)
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 { // Draw
		metrics.AddEvaluation()
		return pos.Evaluate(player)
	}

	if maximizing {
		for i, move := range moves {
			alpha = math.Max(alpha, alphaBeta(pos.Play(move), false, player, depth-1, alpha, beta, metrics))
			if beta <= alpha {
				if i < len(moves)-1 {
					metrics.AddCutoff()
				}
				break // Beta cutoff: the minimizing ancestor already has a better reply
			}
		}
		return alpha
	}

	for i, move := range moves {
		beta = math.Min(beta, alphaBeta(pos.Play(move), true, player, depth-1, alpha, beta, metrics))
		if beta <= alpha {
			if i < len(moves)-1 {
				metrics.AddCutoff()
			}
			break // Alpha cutoff
		}
	}
	return beta
}
