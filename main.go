package main

import (
	"context"
	"flag"
	"fmt"
	"gametree/agent"
	"gametree/engine"
	"gametree/experiments"
	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/game/connect4"
	"gametree/game/oware"
	"gametree/game/tictactoe"
	"gametree/meta"
	"gametree/searcher"
	"gametree/server"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type config struct {
	mode          string
	game          string
	depth         int
	opponentDepth int
	human         int
	addr          string
	games         int
	out           string
	seed          uint64
	shuffle       bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "play", "play, serve or experiment")
	flag.StringVar(&cfg.game, "game", "tictactoe", "tictactoe, connect4 or oware")
	flag.IntVar(&cfg.depth, "depth", meta.DEPTH, "Plies searched past each move")
	flag.IntVar(&cfg.opponentDepth, "opponent-depth", meta.OPPONENT_DEPTH, "Search depth of the second agent")
	flag.IntVar(&cfg.human, "human", 0, "Seat a human as player 1 or 2 (0 for computer only)")
	flag.StringVar(&cfg.addr, "addr", meta.ADDR, "Listen address of the analysis server")
	flag.IntVar(&cfg.games, "games", meta.NUM_GAMES, "Games per experiment matchup")
	flag.StringVar(&cfg.out, "out", "experiments", "Output directory of experiment records")
	flag.Uint64Var(&cfg.seed, "seed", uint64(time.Now().UnixNano()), "Seed for shuffled move orders")
	flag.BoolVar(&cfg.shuffle, "shuffle", false, "Shuffle legal move order for varied play")
	level := flag.String("log-level", "info", "zerolog level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cfg.mode)
	}
}

func run(cfg config) error {
	switch cfg.mode {
	case "play":
		return dispatch(cfg, play[int, tictactoe.Mark], play[int, connect4.Piece], play[int, oware.Player])
	case "experiment":
		return dispatch(cfg, experiment[int, tictactoe.Mark], experiment[int, connect4.Piece], experiment[int, oware.Player])
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx, cfg.addr)
	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}
}

type setup[M, P comparable] struct {
	game  experiments.Game[M, P]
	parse agent.ParseMove[M]
}

func dispatch(
	cfg config,
	tttFn func(config, setup[int, tictactoe.Mark]) error,
	c4Fn func(config, setup[int, connect4.Piece]) error,
	owareFn func(config, setup[int, oware.Player]) error,
) error {
	rng := rand.New(rand.NewSource(cfg.seed))
	switch cfg.game {
	case "tictactoe":
		return tttFn(cfg, setup[int, tictactoe.Mark]{
			game: experiments.Game[int, tictactoe.Mark]{
				Name: "tictactoe",
				New: func() game.Position[int, tictactoe.Mark] {
					if cfg.shuffle {
						return tictactoe.New().Shuffled(rng)
					}
					return tictactoe.New()
				},
				Players: [2]tictactoe.Mark{tictactoe.X, tictactoe.O},
			},
			parse: tictactoe.ParseMove,
		})
	case "connect4":
		return c4Fn(cfg, setup[int, connect4.Piece]{
			game: experiments.Game[int, connect4.Piece]{
				Name: "connect4",
				New: func() game.Position[int, connect4.Piece] {
					if cfg.shuffle {
						return connect4.New().Shuffled(rng)
					}
					return connect4.New()
				},
				Players: [2]connect4.Piece{connect4.Black, connect4.Red},
			},
			parse: connect4.ParseMove,
		})
	case "oware":
		return owareFn(cfg, setup[int, oware.Player]{
			game: experiments.Game[int, oware.Player]{
				Name:    "oware",
				New:     func() game.Position[int, oware.Player] { return oware.New() },
				Players: [2]oware.Player{oware.One, oware.Two},
			},
			parse: oware.ParseMove,
		})
	default:
		return fmt.Errorf("unknown game %q", cfg.game)
	}
}

func play[M, P comparable](cfg config, s setup[M, P]) error {
	agents := map[P]agent.Agent[M, P]{
		s.game.Players[0]: agent.NewSearchAgent[M, P](cfg.depth, searcher.WithMetrics()),
		s.game.Players[1]: agent.NewSearchAgent[M, P](cfg.opponentDepth, searcher.WithMetrics()),
	}
	if cfg.human == 1 || cfg.human == 2 {
		agents[s.game.Players[cfg.human-1]] = agent.NewHumanAgent[M, P](os.Stdin, os.Stdout, s.parse)
		// The computer plays at the main depth against a human
		agents[s.game.Players[2-cfg.human]] = agent.NewSearchAgent[M, P](cfg.depth, searcher.WithMetrics())
	}

	outcome, err := engine.LocalEngine(s.game.New(), agents).Run()
	if err != nil {
		return err
	}

	fmt.Printf("%v\n", outcome.Final)
	switch {
	case outcome.Decided:
		fmt.Printf("Player %v wins!\n", outcome.Winner)
	case outcome.Draw:
		fmt.Println("Draw!")
	default:
		fmt.Printf("Stopped after %d turns (no winner yet)\n", len(outcome.Turns))
	}
	return nil
}

func experiment[M, P comparable](cfg config, s setup[M, P]) error {
	exp := experiments.DepthExperiment(cfg.opponentDepth, []int{cfg.opponentDepth, cfg.depth}, cfg.games)
	exp.Seed = cfg.seed

	writer, err := metrics.NewWriter(cfg.out, s.game.Name+"_"+exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	return experiments.Run(s.game, exp, writer)
}
