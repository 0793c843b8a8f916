package repository

import (
	"fmt"

	"github.com/arcade-night/arcade-backend/internal/models"
)

// ScoreRepository handles score-related database operations.
type ScoreRepository struct {
	db *DB
}

// NewScoreRepository creates a new score repository.
func NewScoreRepository(db *DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create appends a score submission. Score rows are never updated.
func (r *ScoreRepository) Create(score *models.Score) error {
	if err := r.db.Create(score).Error; err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}
	return nil
}

// GetByGameOrdered retrieves every score row for a game in score-desc,
// created-at-asc order. This is the scan order the leaderboard reduction
// depends on: the first row seen per student is their best score, ties
// resolved to the earliest achievement.
func (r *ScoreRepository) GetByGameOrdered(gameName string) ([]models.Score, error) {
	var scores []models.Score
	err := r.db.
		Where("game_name = ?", gameName).
		Order("score DESC").
		Order("created_at ASC").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get scores for game %s: %w", gameName, err)
	}
	return scores, nil
}

// GetByStudent retrieves all scores submitted by a student, newest first.
func (r *ScoreRepository) GetByStudent(studentID string) ([]models.Score, error) {
	var scores []models.Score
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get scores for student %s: %w", studentID, err)
	}
	return scores, nil
}

// CountDistinctGames counts the distinct games a student has ever scored in.
func (r *ScoreRepository) CountDistinctGames(studentID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Score{}).
		Where("student_id = ?", studentID).
		Distinct("game_name").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct games: %w", err)
	}
	return count, nil
}

// DeleteOrphans deletes score rows whose student no longer exists.
// Returns the number of rows deleted.
func (r *ScoreRepository) DeleteOrphans() (int64, error) {
	result := r.db.
		Where("student_id NOT IN (?)", r.db.Model(&models.Student{}).Select("student_id")).
		Delete(&models.Score{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphan scores: %w", result.Error)
	}
	return result.RowsAffected, nil
}
