package engine

import "gametree/meta"

const MaxTurns = meta.MAX_TURNS

type Option func(c *config)

type config struct {
	maxTurns int
}

// WithMaxTurns stops a match undecided after turns moves.
func WithMaxTurns(turns int) Option {
	return func(c *config) {
		if turns > 0 {
			c.maxTurns = turns
		}
	}
}
