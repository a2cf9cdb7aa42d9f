package metrics

import (
	"gametree/searcher"
	"time"
)

type AgentConfig struct {
	ID     int
	Depth  int
	Random bool // Plays uniformly random moves instead of searching
}

type GameMetric struct {
	UUID           string
	StartingPlayer string
	Winner         string // Empty when drawn or undecided
	Draw           bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type MoveMetric struct {
	Step    int
	Player  string
	Move    string
	Elapsed time.Duration
	searcher.SearchMetric
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID of the first player
	Agent2 int // AgentConfig.ID of the second player
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
