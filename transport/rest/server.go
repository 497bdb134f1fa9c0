package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-hotseat/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

// NewRouter serves the session API. mount adds extra routes under /sessions/{id}.
func NewRouter(logger *slog.Logger, sessions sessionManager, defaultCells int, mount ...func(chi.Router)) chi.Router {
	h := &sessionHandlers{
		logger:       logger.With("component", "rest"),
		sessions:     sessions,
		defaultCells: defaultCells,
	}

	r := chi.NewRouter()
	r.Get("/ping", handlers.PingHandler)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Delete("/", h.remove)
			r.Post("/cells/{index}", h.selectCell)
			r.Post("/reset", h.reset)
			r.Post("/restart", h.restart)
			r.Post("/replay", h.replay)
			r.Post("/mark", h.chooseMark)

			for _, m := range mount {
				m(r)
			}
		})
	})

	return r
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     handler,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
