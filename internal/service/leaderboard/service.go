// Package leaderboard computes per-game best-score orderings, ranks and
// percentiles.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/arcade-night/arcade-backend/internal/metrics"
	"github.com/arcade-night/arcade-backend/internal/models"
	"github.com/arcade-night/arcade-backend/internal/repository"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

// ScoreRepository interface for score operations.
type ScoreRepository interface {
	GetByGameOrdered(gameName string) ([]models.Score, error)
}

// StudentRepository interface for student operations.
type StudentRepository interface {
	DisplayNames(studentIDs []string) (map[string]string, error)
}

// Entry is one row of a game's leaderboard: a student's best score and when
// it was first achieved.
type Entry struct {
	Rank       int       `json:"rank"`
	StudentID  string    `json:"studentId"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	AchievedAt time.Time `json:"achievedAt"`
	IsMe       bool      `json:"isMe,omitempty"`
}

// Service builds leaderboards from the append-only score history.
type Service struct {
	scoreRepo   ScoreRepository
	studentRepo StudentRepository
	log         *logger.Logger
}

// NewService creates a new leaderboard service with concrete repository types.
func NewService(scoreRepo *repository.ScoreRepository, studentRepo *repository.StudentRepository, log *logger.Logger) *Service {
	return &Service{
		scoreRepo:   scoreRepo,
		studentRepo: studentRepo,
		log:         log,
	}
}

// NewServiceWithInterfaces creates a new leaderboard service with interface
// dependencies (useful for testing).
func NewServiceWithInterfaces(scoreRepo ScoreRepository, studentRepo StudentRepository, log *logger.Logger) *Service {
	return &Service{
		scoreRepo:   scoreRepo,
		studentRepo: studentRepo,
		log:         log,
	}
}

// GetFullOrder returns the complete ordering for a game: one entry per
// distinct student, best score each, ordered by score descending with ties
// broken by the earliest timestamp at which the best score was achieved.
//
// The reduction scans rows already sorted (score desc, created_at asc) and
// keeps the first row seen per student. Establishing the tie-break order
// before reducing is what makes the representative per student
// deterministic; reducing over an unordered scan could pick a later
// achievement of a tied score and make ranks non-reproducible.
//
//nolint:revive // ctx reserved for future context-aware repository calls
func (s *Service) GetFullOrder(ctx context.Context, gameName string) ([]Entry, error) {
	scoreRows, err := s.scoreRepo.GetByGameOrdered(gameName)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	seen := make(map[string]bool, len(scoreRows))
	entries := make([]Entry, 0, len(scoreRows))
	for _, row := range scoreRows {
		if seen[row.StudentID] {
			continue
		}
		seen[row.StudentID] = true
		entries = append(entries, Entry{
			StudentID:  row.StudentID,
			Score:      row.Score,
			AchievedAt: row.CreatedAt,
		})
	}

	// The reduced set is re-sorted under the same ordering so the result
	// does not depend on the scan preserving it.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].AchievedAt.Before(entries[j].AchievedAt)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	metrics.SetLeaderboardPlayers(gameName, len(entries))
	return entries, nil
}

// GetRankings returns one page of a game's leaderboard plus the total number
// of distinct players.
func (s *Service) GetRankings(ctx context.Context, gameName string, skip, limit int) ([]Entry, int, error) {
	order, err := s.GetFullOrder(ctx, gameName)
	if err != nil {
		return nil, 0, err
	}

	total := len(order)
	if skip < 0 {
		skip = 0
	}
	if skip > total {
		skip = total
	}
	end := total
	if limit > 0 && skip+limit < total {
		end = skip + limit
	}

	page := make([]Entry, end-skip)
	copy(page, order[skip:end])
	if err := s.resolveNames(page); err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

// GetTopN returns the top n entries of a game's leaderboard.
func (s *Service) GetTopN(ctx context.Context, gameName string, n int) ([]Entry, error) {
	entries, _, err := s.GetRankings(ctx, gameName, 0, n)
	return entries, err
}

// Window returns up to seven entries centered on myRank (three before, the
// entry itself, three after), clamped to the ordering's bounds, with display
// names resolved and the submitter flagged.
//
//nolint:revive // ctx reserved for future context-aware repository calls
func (s *Service) Window(ctx context.Context, order []Entry, myRank int) ([]Entry, error) {
	if myRank < 1 || myRank > len(order) {
		return []Entry{}, nil
	}

	lo := myRank - 1 - 3
	if lo < 0 {
		lo = 0
	}
	hi := myRank - 1 + 4
	if hi > len(order) {
		hi = len(order)
	}

	window := make([]Entry, hi-lo)
	copy(window, order[lo:hi])
	for i := range window {
		window[i].IsMe = window[i].Rank == myRank
	}
	if err := s.resolveNames(window); err != nil {
		return nil, err
	}
	return window, nil
}

// resolveNames annotates entries with display names, falling back to the
// raw student number when the student record has been deleted.
func (s *Service) resolveNames(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.StudentID)
	}

	names, err := s.studentRepo.DisplayNames(ids)
	if err != nil {
		return fmt.Errorf("failed to resolve display names: %w", err)
	}
	for i := range entries {
		if name, ok := names[entries[i].StudentID]; ok {
			entries[i].Name = name
		} else {
			entries[i].Name = entries[i].StudentID
		}
	}
	return nil
}
