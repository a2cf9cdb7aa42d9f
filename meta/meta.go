// meta/meta.go
package meta

// DEPTH is the default number of plies searched past each root move.
const DEPTH = 4

// OPPONENT_DEPTH is the default depth of the second agent in experiments.
const OPPONENT_DEPTH = 2

// MAX_TURNS caps a match; oware can cycle without it.
const MAX_TURNS = 300

// NUM_GAMES is the number of games per experiment matchup.
const NUM_GAMES = 10

// MAX_SERVER_DEPTH bounds the depth a client may request from the analysis server.
const MAX_SERVER_DEPTH = 10

// ADDR is the default listen address of the analysis server.
const ADDR = ":8080"
