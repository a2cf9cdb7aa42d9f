package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gametree/game"
	"gametree/game/connect4"
	"gametree/game/oware"
	"gametree/game/tictactoe"
	"gametree/meta"
	"gametree/searcher"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type bestMoveRequest struct {
	Position string `json:"position"`
	Depth    *int   `json:"depth"`
}

type bestMoveResponse struct {
	Move        any     `json:"move"`
	Score       float64 `json:"score"`
	Depth       int     `json:"depth"`
	Nodes       int64   `json:"nodes"`
	Evaluations int64   `json:"evaluations"`
	Cutoffs     int64   `json:"cutoffs"`
	DurationMs  float64 `json:"duration_ms"`
}

type analyzer func(position string, depth int) (bestMoveResponse, error)

// analyze builds an analyzer for a game from its position parser.
func analyze[M, P comparable, T game.Position[M, P]](parse func(string) (T, error)) analyzer {
	return func(position string, depth int) (bestMoveResponse, error) {
		pos, err := parse(position)
		if err != nil {
			return bestMoveResponse{}, err
		}
		result, err := searcher.New[M, P](depth, searcher.WithMetrics()).Search(pos)
		if err != nil {
			return bestMoveResponse{}, err
		}
		return bestMoveResponse{
			Move:        result.Move,
			Score:       result.Score,
			Depth:       result.Depth,
			Nodes:       result.Nodes,
			Evaluations: result.Evaluations,
			Cutoffs:     result.Cutoffs,
			DurationMs:  float64(result.Duration.Microseconds()) / 1000,
		}, nil
	}
}

var analyzers = map[string]analyzer{
	"tictactoe": analyze[int, tictactoe.Mark](tictactoe.Parse),
	"connect4":  analyze[int, connect4.Piece](connect4.Parse),
	"oware":     analyze[int, oware.Player](oware.Parse),
}

// NewRouter returns the HTTP API of the analysis server.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/games", func(w http.ResponseWriter, r *http.Request) {
		names := make([]string, 0, len(analyzers))
		for name := range analyzers {
			names = append(names, name)
		}
		sort.Strings(names)
		writeJSON(w, http.StatusOK, map[string][]string{"games": names})
	})

	r.Post("/api/{game}/bestmove", handleBestMove)
	return r
}

func handleBestMove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "game")
	run, ok := analyzers[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown game %q", name)})
		return
	}

	var payload bestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	depth := meta.DEPTH
	if payload.Depth != nil {
		depth = *payload.Depth
	}
	if depth < 0 || depth > meta.MAX_SERVER_DEPTH {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("depth must be between 0 and %d", meta.MAX_SERVER_DEPTH)})
		return
	}

	response, err := run(payload.Position, depth)
	switch {
	case errors.Is(err, game.ErrParse):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, searcher.ErrNoLegalMove):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "position is already over"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, response)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}

// Serve listens on addr until ctx is done, then shuts the server down gracefully.
func Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: NewRouter(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Info().Msgf("analysis server listening on %s", addr)
	select {
	case <-ctx.Done():
		log.Info().Msgf("shutdown signal received: %v", ctx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
