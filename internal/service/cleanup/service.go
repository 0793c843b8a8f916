// Package cleanup runs the periodic orphan sweep: score and reward rows
// whose student no longer exists are deleted on a fixed schedule.
package cleanup

import (
	"github.com/robfig/cron/v3"

	"github.com/arcade-night/arcade-backend/internal/config"
	"github.com/arcade-night/arcade-backend/internal/metrics"
	"github.com/arcade-night/arcade-backend/internal/repository"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

// ScoreRepository interface for score cleanup.
type ScoreRepository interface {
	DeleteOrphans() (int64, error)
}

// RewardRepository interface for reward cleanup.
type RewardRepository interface {
	DeleteOrphans() (int64, error)
}

// Service schedules and runs the orphan sweep.
type Service struct {
	cfg        *config.CleanupConfig
	scoreRepo  ScoreRepository
	rewardRepo RewardRepository
	log        *logger.Logger
	cron       *cron.Cron
}

// NewService creates a new cleanup service.
func NewService(
	cfg *config.CleanupConfig,
	scoreRepo *repository.ScoreRepository,
	rewardRepo *repository.RewardRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		cfg:        cfg,
		scoreRepo:  scoreRepo,
		rewardRepo: rewardRepo,
		log:        log,
	}
}

// NewServiceWithInterfaces creates a new cleanup service with interface
// dependencies (useful for testing).
func NewServiceWithInterfaces(
	cfg *config.CleanupConfig,
	scoreRepo ScoreRepository,
	rewardRepo RewardRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		cfg:        cfg,
		scoreRepo:  scoreRepo,
		rewardRepo: rewardRepo,
		log:        log,
	}
}

// Start schedules the sweep. Does nothing when disabled in configuration.
func (s *Service) Start() error {
	if !s.cfg.Enabled {
		s.log.Info().Msg("Orphan cleanup is disabled in configuration")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()

	s.log.Info().
		Str("schedule", s.cfg.Schedule).
		Msg("Orphan cleanup scheduled")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce performs one sweep. Failures are logged and never propagate past
// this boundary.
func (s *Service) RunOnce() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("Orphan cleanup panicked")
		}
	}()

	scoresDeleted, err := s.scoreRepo.DeleteOrphans()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to delete orphan scores")
	} else if scoresDeleted > 0 {
		metrics.RecordOrphansDeleted("scores", scoresDeleted)
	}

	rewardsDeleted, err := s.rewardRepo.DeleteOrphans()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to delete orphan rewards")
	} else if rewardsDeleted > 0 {
		metrics.RecordOrphansDeleted("rewards", rewardsDeleted)
	}

	metrics.SetCleanupLastRun()
	s.log.Info().
		Int64("scores_deleted", scoresDeleted).
		Int64("rewards_deleted", rewardsDeleted).
		Msg("Orphan cleanup completed")
}
