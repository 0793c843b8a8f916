// Package rewards evaluates and grants score-submission rewards.
package rewards

import (
	"context"
	"fmt"

	"github.com/arcade-night/arcade-backend/internal/cache"
	"github.com/arcade-night/arcade-backend/internal/metrics"
	"github.com/arcade-night/arcade-backend/internal/models"
	"github.com/arcade-night/arcade-backend/internal/repository"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

// PerStudentPercentileCap is the fixed number of percentile rewards any one
// student can hold across all games.
const PerStudentPercentileCap = 5

// gateKey is the capacity gate counter for the global percentile-reward cap.
const gateKey = "rewards:top_percentile:granted"

// RewardRepository interface for reward operations.
type RewardRepository interface {
	Create(reward *models.Reward) error
	HasReward(studentID, title string) (bool, error)
	HasRewardForGame(studentID, title, description string) (bool, error)
	CountByStudentAndTitle(studentID, title string) (int64, error)
	CountByTitle(title string) (int64, error)
}

// ScoreRepository interface for score operations.
type ScoreRepository interface {
	CountDistinctGames(studentID string) (int64, error)
}

// CapacityGate interface for the advisory global-cap gate.
type CapacityGate interface {
	Acquire(ctx context.Context, key string, limit, seed int64) (bool, error)
	Release(ctx context.Context, key string)
}

// Result reports which award rules fired for a submission.
type Result struct {
	RewardEarned    bool
	FirstGameReward bool
}

// Service decides whether a just-submitted score earns rewards, subject to
// global and per-student caps and award-once idempotence.
type Service struct {
	rewardRepo RewardRepository
	scoreRepo  ScoreRepository
	gate       CapacityGate
	threshold  int
	globalCap  int64
	log        *logger.Logger
}

// NewService creates a new reward service with concrete repository types.
func NewService(
	rewardRepo *repository.RewardRepository,
	scoreRepo *repository.ScoreRepository,
	gate *cache.Gate,
	threshold int,
	globalCap int,
	log *logger.Logger,
) *Service {
	return &Service{
		rewardRepo: rewardRepo,
		scoreRepo:  scoreRepo,
		gate:       gate,
		threshold:  threshold,
		globalCap:  int64(globalCap),
		log:        log,
	}
}

// NewServiceWithInterfaces creates a new reward service with interface
// dependencies (useful for testing).
func NewServiceWithInterfaces(
	rewardRepo RewardRepository,
	scoreRepo ScoreRepository,
	gate CapacityGate,
	threshold int,
	globalCap int,
	log *logger.Logger,
) *Service {
	return &Service{
		rewardRepo: rewardRepo,
		scoreRepo:  scoreRepo,
		gate:       gate,
		threshold:  threshold,
		globalCap:  int64(globalCap),
		log:        log,
	}
}

// Evaluate runs the two award rules in fixed order for a submission that has
// already been persisted. Both rules may fire on the same submission. Cap
// and dedup refusals are expected steady-state outcomes; only persistence
// failures return an error.
func (s *Service) Evaluate(ctx context.Context, studentID, gameName string, topPercentile float64) (Result, error) {
	var result Result

	first, err := s.evaluateFirstClear(studentID)
	if err != nil {
		return result, err
	}
	if first {
		result.RewardEarned = true
		result.FirstGameReward = true
	}

	granted, err := s.evaluateTopPercentile(ctx, studentID, gameName, topPercentile)
	if err != nil {
		return result, err
	}
	if granted {
		result.RewardEarned = true
	}

	return result, nil
}

// evaluateFirstClear grants the one-time first-clear reward when this
// submission is the student's first recorded score across all games.
func (s *Service) evaluateFirstClear(studentID string) (bool, error) {
	games, err := s.scoreRepo.CountDistinctGames(studentID)
	if err != nil {
		return false, fmt.Errorf("failed to count distinct games: %w", err)
	}
	if games != 1 {
		return false, nil
	}

	has, err := s.rewardRepo.HasReward(studentID, models.TitleFirstClear)
	if err != nil {
		return false, fmt.Errorf("failed to check first-clear reward: %w", err)
	}
	if has {
		return false, nil
	}

	if err := s.rewardRepo.Create(models.NewReward(studentID, models.FirstClear{})); err != nil {
		return false, fmt.Errorf("failed to grant first-clear reward: %w", err)
	}

	metrics.RecordRewardAwarded("first_clear")
	s.log.Info().
		Str("student_id", studentID).
		Msg("First-clear reward granted")
	return true, nil
}

// evaluateTopPercentile grants the capped percentile reward. Refusal order:
// per-student cap, global cap, per-game dedup.
func (s *Service) evaluateTopPercentile(ctx context.Context, studentID, gameName string, topPercentile float64) (bool, error) {
	if topPercentile > float64(s.threshold) {
		return false, nil
	}

	held, err := s.rewardRepo.CountByStudentAndTitle(studentID, models.TitleTopPercentile)
	if err != nil {
		return false, fmt.Errorf("failed to count student percentile rewards: %w", err)
	}
	if held >= PerStudentPercentileCap {
		metrics.RecordRewardRefusal("per_student_cap")
		s.log.Debug().
			Str("student_id", studentID).
			Int64("held", held).
			Msg("Percentile reward refused: per-student cap reached")
		return false, nil
	}

	total, err := s.rewardRepo.CountByTitle(models.TitleTopPercentile)
	if err != nil {
		return false, fmt.Errorf("failed to count percentile rewards: %w", err)
	}
	if total >= s.globalCap {
		metrics.RecordRewardRefusal("global_cap")
		s.log.Info().
			Int64("total", total).
			Int64("cap", s.globalCap).
			Msg("Percentile reward refused: global cap reached")
		return false, nil
	}

	// The gate narrows the window between the count above and the insert
	// below; it never blocks and a cache failure degrades to the plain
	// read-then-write check.
	acquired, gateErr := s.gate.Acquire(ctx, gateKey, s.globalCap, total)
	if gateErr != nil {
		s.log.Warn().Err(gateErr).Msg("Capacity gate unavailable, relying on database count")
	}
	if !acquired {
		metrics.RecordRewardRefusal("global_cap")
		s.log.Info().
			Int64("cap", s.globalCap).
			Msg("Percentile reward refused: capacity gate full")
		return false, nil
	}

	kind := models.TopPercentile{Game: gameName, Threshold: s.threshold}
	exists, err := s.rewardRepo.HasRewardForGame(studentID, kind.Title(), kind.Description())
	if err != nil {
		s.gate.Release(ctx, gateKey)
		return false, fmt.Errorf("failed to check percentile reward: %w", err)
	}
	if exists {
		s.gate.Release(ctx, gateKey)
		metrics.RecordRewardRefusal("already_awarded")
		return false, nil
	}

	if err := s.rewardRepo.Create(models.NewReward(studentID, kind)); err != nil {
		s.gate.Release(ctx, gateKey)
		return false, fmt.Errorf("failed to grant percentile reward: %w", err)
	}

	metrics.RecordRewardAwarded("top_percentile")
	s.log.Info().
		Str("student_id", studentID).
		Str("game", gameName).
		Float64("top_percentile", topPercentile).
		Msg("Percentile reward granted")
	return true, nil
}
