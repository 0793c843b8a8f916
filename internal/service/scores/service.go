// Package scores orchestrates the score-submission pipeline: persist,
// rank, award, assemble the response.
package scores

import (
	"context"
	"fmt"
	"time"

	"github.com/arcade-night/arcade-backend/internal/metrics"
	"github.com/arcade-night/arcade-backend/internal/models"
	"github.com/arcade-night/arcade-backend/internal/repository"
	"github.com/arcade-night/arcade-backend/internal/service/leaderboard"
	"github.com/arcade-night/arcade-backend/internal/service/rewards"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

// ScoreRepository interface for score persistence.
type ScoreRepository interface {
	Create(score *models.Score) error
}

// LeaderboardService interface for ordering and window assembly.
type LeaderboardService interface {
	GetFullOrder(ctx context.Context, gameName string) ([]leaderboard.Entry, error)
	Window(ctx context.Context, order []leaderboard.Entry, myRank int) ([]leaderboard.Entry, error)
}

// RewardService interface for award evaluation.
type RewardService interface {
	Evaluate(ctx context.Context, studentID, gameName string, topPercentile float64) (rewards.Result, error)
}

// SubmitResult is the full response payload for a score submission.
type SubmitResult struct {
	Success                   bool                `json:"success"`
	CurrentScore              int                 `json:"currentScore"`
	MyBestScore               int                 `json:"myBestScore"`
	MyRank                    int                 `json:"myRank"`
	TotalPlayers              int                 `json:"totalPlayers"`
	Percentile                float64             `json:"percentile"`
	TopPercentile             float64             `json:"topPercentile"`
	CurrentScoreRank          int                 `json:"currentScoreRank"`
	CurrentScoreTopPercentile float64             `json:"currentScoreTopPercentile"`
	NearbyRankings            []leaderboard.Entry `json:"nearbyRankings"`
	RewardEarned              bool                `json:"rewardEarned"`
	FirstGameReward           bool                `json:"firstGameReward"`
}

// Service handles the submission pipeline.
type Service struct {
	scoreRepo  ScoreRepository
	board      LeaderboardService
	rewardsSvc RewardService
	log        *logger.Logger
}

// NewService creates a new submission service with concrete types.
func NewService(
	scoreRepo *repository.ScoreRepository,
	board *leaderboard.Service,
	rewardsSvc *rewards.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		scoreRepo:  scoreRepo,
		board:      board,
		rewardsSvc: rewardsSvc,
		log:        log,
	}
}

// NewServiceWithInterfaces creates a new submission service with interface
// dependencies (useful for testing).
func NewServiceWithInterfaces(
	scoreRepo ScoreRepository,
	board LeaderboardService,
	rewardsSvc RewardService,
	log *logger.Logger,
) *Service {
	return &Service{
		scoreRepo:  scoreRepo,
		board:      board,
		rewardsSvc: rewardsSvc,
		log:        log,
	}
}

// Submit persists a score, recomputes the game's ordering, evaluates reward
// rules and assembles the response. The score persists even if a later step
// fails: a lost reward grant is recoverable by replay, a lost score is not.
func (s *Service) Submit(ctx context.Context, gameName, studentID string, value, playTime int) (*SubmitResult, error) {
	start := time.Now()

	score := &models.Score{
		StudentID: studentID,
		GameName:  gameName,
		Score:     value,
		PlayTime:  playTime,
	}
	if err := s.scoreRepo.Create(score); err != nil {
		return nil, fmt.Errorf("failed to persist score: %w", err)
	}

	order, err := s.board.GetFullOrder(ctx, gameName)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ordering: %w", err)
	}

	standing := leaderboard.ComputeStanding(order, studentID, value)

	awarded, err := s.rewardsSvc.Evaluate(ctx, studentID, gameName, standing.TopPercentile)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate rewards: %w", err)
	}

	window, err := s.board.Window(ctx, order, standing.MyRank)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble ranking window: %w", err)
	}

	metrics.RecordScoreSubmitted(gameName)
	metrics.ObserveSubmissionDuration(gameName, time.Since(start).Seconds())

	s.log.Info().
		Str("student_id", studentID).
		Str("game", gameName).
		Int("score", value).
		Int("rank", standing.MyRank).
		Int("players", standing.TotalPlayers).
		Bool("reward_earned", awarded.RewardEarned).
		Msg("Score submitted")

	return &SubmitResult{
		Success:                   true,
		CurrentScore:              value,
		MyBestScore:               standing.BestScore,
		MyRank:                    standing.MyRank,
		TotalPlayers:              standing.TotalPlayers,
		Percentile:                standing.Percentile,
		TopPercentile:             standing.TopPercentile,
		CurrentScoreRank:          standing.CurrentScoreRank,
		CurrentScoreTopPercentile: standing.CurrentScoreTopPercentile,
		NearbyRankings:            window,
		RewardEarned:              awarded.RewardEarned,
		FirstGameReward:           awarded.FirstGameReward,
	}, nil
}
