package experiments

import (
	"fmt"
	"gametree/agent"
	"gametree/engine"
	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Game describes how to start a match and who takes part in it.
type Game[M, P comparable] struct {
	Name    string
	New     func() game.Position[M, P]
	Players [2]P // Players[0] moves first from New()
}

type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	NumGames int // Per matchup
	MaxTurns int
	Seed     uint64
}

// DepthExperiment pairs a baseline agent against an agent for every depth in depths.
func DepthExperiment(baselineDepth int, depths []int, numGames int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: baselineDepth}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:     "depth",
		Configs:  configs,
		MatchUps: matchUps,
		NumGames: numGames,
	}
}

// Run plays every matchup NumGames times, alternating which agent moves first, and stores the
// agent configs, game records and move records through writer.
func Run[M, P comparable](g Game[M, P], exp Experiment, writer *metrics.Writer) error {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment on %s...", exp.Name, g.Name)

	for mi, matchup := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), matchup[0], matchup[1])

		for i := 0; i < exp.NumGames; i++ {
			first, second := matchup[0], matchup[1]
			if i%2 == 1 {
				first, second = second, first
			}
			seed := exp.Seed + uint64(count)

			agents := map[P]agent.Agent[M, P]{
				g.Players[0]: createAgent[M, P](first, seed),
				g.Players[1]: createAgent[M, P](second, seed+1),
			}
			e := engine.LocalEngine(g.New(), agents, engine.WithMaxTurns(exp.MaxTurns))
			outcome, err := e.Run()
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			count++
			gameRecords = append(gameRecords, gameRecord(count, first, second, g.Players[0], outcome))
			for _, turn := range outcome.Turns {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game: count,
					MoveMetric: metrics.MoveMetric{
						Step:         turn.Step,
						Player:       fmt.Sprint(turn.Player),
						Move:         fmt.Sprint(turn.Move),
						Elapsed:      turn.Elapsed,
						SearchMetric: turn.SearchMetric,
					},
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, gameRecords[len(gameRecords)-1].Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored experiment records in %s", writer.Dir())
	return nil
}

func gameRecord[M, P comparable](id int, first, second metrics.AgentConfig, starting P, outcome engine.Outcome[M, P]) metrics.GameRecord {
	winner := ""
	if outcome.Decided {
		winner = fmt.Sprint(outcome.Winner)
	}
	return metrics.GameRecord{
		ID:     id,
		Agent1: first.ID,
		Agent2: second.ID,
		GameMetric: metrics.GameMetric{
			UUID:           uuid.NewString(),
			StartingPlayer: fmt.Sprint(starting),
			Winner:         winner,
			Draw:           outcome.Draw,
			StartTime:      outcome.StartTime,
			EndTime:        outcome.EndTime,
			Duration:       outcome.EndTime.Sub(outcome.StartTime),
			TotalMoves:     len(outcome.Turns),
		},
	}
}

func createAgent[M, P comparable](config metrics.AgentConfig, seed uint64) agent.Agent[M, P] {
	if config.Random {
		return agent.NewRandomAgent[M, P](seed)
	}
	return agent.NewSearchAgent[M, P](config.Depth, searcher.WithMetrics())
}
