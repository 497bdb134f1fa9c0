package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivo/tview"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/service"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/rest"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/websocket"
	"github.com/rocketscienceinc/tictactoe-hotseat/ui"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	broadcaster := service.NewBroadcaster(logger, 0)
	var publisher repository.EventPublisher

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		log.Info("Publishing session events to redis", "addr", redisAddrString, "prefix", conf.Redis.ChannelPrefix)
		publisher = repository.NewEventPublisher(redisStorage.Connection, conf.Redis.ChannelPrefix)
	}

	switch conf.Mode {
	case config.ModeHTTP:
		return runHTTP(ctx, logger, conf, broadcaster, publisher)
	case config.ModeTUI:
		return runTUI(ctx, logger, conf, broadcaster, publisher)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownMode, conf.Mode)
	}
}

func runHTTP(ctx context.Context, logger *slog.Logger, conf *config.Config, broadcaster *service.Broadcaster, publisher repository.EventPublisher) error {
	log := logger.With("component", "app")

	sessions := usecase.NewSessionManager(logger, service.NewNotifiers(broadcaster, publisher))
	sessions.OnDelete(broadcaster.CloseSession)

	wsServer := websocket.New(logger, sessions, broadcaster)
	router := rest.NewRouter(logger, sessions, conf.Cells, wsServer.Routes)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err := rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

func runTUI(ctx context.Context, logger *slog.Logger, conf *config.Config, broadcaster *service.Broadcaster, publisher repository.EventPublisher) error {
	log := logger.With("component", "app")

	app := tview.NewApplication()
	board := ui.NewBoard(ctx, logger, app)

	sessions := usecase.NewSessionManager(logger, service.NewNotifiers(broadcaster, publisher, board))
	session, err := sessions.Create(ctx, conf.Cells)
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}
	board.Attach(session)

	go func() {
		<-ctx.Done()
		app.Stop()
	}()

	log.Info("Starting terminal UI", "sessionID", session.ID(), "cells", conf.Cells)
	if err = app.SetRoot(board.Root(), true).Run(); err != nil {
		return fmt.Errorf("terminal UI error: %w", err)
	}

	return nil
}
