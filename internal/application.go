package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rocketscienceinc/tictactoe-arena/internal/broadcast"
	"github.com/rocketscienceinc/tictactoe-arena/internal/config"
	"github.com/rocketscienceinc/tictactoe-arena/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-arena/internal/service"
	"github.com/rocketscienceinc/tictactoe-arena/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-arena/transport/rest"
	"github.com/rocketscienceinc/tictactoe-arena/transport/websocket"
)

const shutdownTimeout = 15 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" || redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	archive, closeArchive, err := initArchive(log, conf)
	if err != nil {
		return err
	}
	defer closeArchive()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(conf.Metrics.Namespace, registry)

	hub := broadcast.New(logger)

	playerRepo := repository.NewPlayerRepository(redisStorage)
	gameRepo := repository.NewGameRepository(redisStorage)

	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(gameRepo)
	gamePlayService := service.NewGamePlayService(logger, playerService, gameService, archive, hub)

	catalog := usecase.NewGameCatalog(logger, playerService, gameService, gamePlayService, archive, appMetrics)

	router := rest.NewRouter(
		rest.NewHandlers(logger, catalog),
		websocket.New(logger, catalog, hub),
		metrics.Handler(registry),
	)
	srv := rest.NewServer(conf.HTTPPort, router)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := srv.ListenAndServe(); httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	return nil
}

// initArchive - connects the finished games archive, or returns a no-op archive when it is disabled.
func initArchive(log *slog.Logger, conf *config.Config) (repository.ArchiveRepository, func(), error) {
	if !conf.Postgres.Enabled {
		log.Info("postgres archive is disabled")
		return repository.NewNopArchiveRepository(), func() {}, nil
	}

	db, err := storage.NewPostgres(conf.Postgres.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	closeDB := func() {
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			log.Error("could not get postgres handle", "error", dbErr)
			return
		}

		if dbErr = sqlDB.Close(); dbErr != nil {
			log.Error("could not close postgres", "error", dbErr)
		}
	}

	archive, err := repository.NewArchiveRepository(db)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return archive, closeDB, nil
}
