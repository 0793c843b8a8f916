// Command server runs the arcade backend HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcade-night/arcade-backend/internal/api"
	"github.com/arcade-night/arcade-backend/internal/api/games"
	"github.com/arcade-night/arcade-backend/internal/api/students"
	"github.com/arcade-night/arcade-backend/internal/cache"
	"github.com/arcade-night/arcade-backend/internal/config"
	"github.com/arcade-night/arcade-backend/internal/repository"
	"github.com/arcade-night/arcade-backend/internal/service/cleanup"
	"github.com/arcade-night/arcade-backend/internal/service/leaderboard"
	"github.com/arcade-night/arcade-backend/internal/service/rewards"
	"github.com/arcade-night/arcade-backend/internal/service/scores"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.Get()

	db, err := repository.NewDB(&cfg.Database.Postgres, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Redis backs the advisory capacity gate only; the server runs without
	// it, falling back to plain read-then-write cap checks.
	var gate *cache.Gate
	if cfg.Database.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cfg.Database.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, reward caps rely on database counts only")
			gate = cache.NewGate(nil)
		} else {
			defer redisCache.Close()
			gate = cache.NewGate(redisCache)
		}
	} else {
		gate = cache.NewGate(nil)
	}

	studentRepo := repository.NewStudentRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	rewardRepo := repository.NewRewardRepository(db)

	boardService := leaderboard.NewService(scoreRepo, studentRepo, log)
	rewardService := rewards.NewService(
		rewardRepo,
		scoreRepo,
		gate,
		cfg.Rewards.PercentileThreshold,
		cfg.Rewards.GlobalPercentileCap,
		log,
	)
	submitService := scores.NewService(scoreRepo, boardService, rewardService, log)

	cleanupService := cleanup.NewService(&cfg.Cleanup, scoreRepo, rewardRepo, log)
	if err := cleanupService.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start cleanup scheduler")
	}
	defer cleanupService.Stop()

	gamesHandler := games.NewHandler(submitService, boardService, log)
	studentsHandler := students.NewHandler(studentRepo, rewardRepo, log)
	engine := api.NewRouter(cfg, gamesHandler, studentsHandler, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
