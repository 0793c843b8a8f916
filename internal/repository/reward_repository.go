package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arcade-night/arcade-backend/internal/models"
)

// ErrAlreadyClaimed is returned when a reward's claimed flag is already set.
var ErrAlreadyClaimed = errors.New("reward already claimed")

// RewardRepository handles reward-related database operations.
type RewardRepository struct {
	db *DB
}

// NewRewardRepository creates a new reward repository.
func NewRewardRepository(db *DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// Create creates a new reward row.
func (r *RewardRepository) Create(reward *models.Reward) error {
	if err := r.db.Create(reward).Error; err != nil {
		return fmt.Errorf("failed to create reward: %w", err)
	}
	return nil
}

// GetByID retrieves a reward by its ID.
func (r *RewardRepository) GetByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.First(&reward, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get reward %d: %w", id, err)
	}
	return &reward, nil
}

// GetByStudent retrieves all rewards earned by a student, newest first.
func (r *RewardRepository) GetByStudent(studentID string) ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.db.
		Where("student_id = ?", studentID).
		Order("earned_at DESC").
		Find(&rewards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rewards for student %s: %w", studentID, err)
	}
	return rewards, nil
}

// HasReward checks whether the student holds a reward with the given title,
// regardless of description. De-duplication key for the first-clear reward.
func (r *RewardRepository) HasReward(studentID, title string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reward{}).
		Where("student_id = ? AND title = ?", studentID, title).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reward existence: %w", err)
	}
	return count > 0, nil
}

// HasRewardForGame checks whether the student already holds a reward with
// the exact title and description. The description encodes the triggering
// game, so this is the per-game de-duplication key.
func (r *RewardRepository) HasRewardForGame(studentID, title, description string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reward{}).
		Where("student_id = ? AND title = ? AND description = ?", studentID, title, description).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reward existence: %w", err)
	}
	return count > 0, nil
}

// CountByStudentAndTitle counts rewards with a title held by one student.
func (r *RewardRepository) CountByStudentAndTitle(studentID, title string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reward{}).
		Where("student_id = ? AND title = ?", studentID, title).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count student rewards: %w", err)
	}
	return count, nil
}

// CountByTitle counts all rewards with a title across students.
func (r *RewardRepository) CountByTitle(title string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reward{}).
		Where("title = ?", title).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count rewards: %w", err)
	}
	return count, nil
}

// Claim sets the claimed flag exactly once. Returns ErrAlreadyClaimed if the
// reward was claimed before, gorm.ErrRecordNotFound if it does not exist.
func (r *RewardRepository) Claim(id uint) (*models.Reward, error) {
	var reward models.Reward
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reward, id).Error; err != nil {
			return err
		}
		now := time.Now()
		result := tx.Model(&models.Reward{}).
			Where("id = ? AND claimed = ?", id, false).
			Updates(map[string]interface{}{"claimed": true, "claimed_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyClaimed
		}
		reward.Claimed = true
		reward.ClaimedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyClaimed) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to claim reward %d: %w", id, err)
	}
	return &reward, nil
}

// DeleteOrphans deletes reward rows whose student no longer exists.
// Returns the number of rows deleted.
func (r *RewardRepository) DeleteOrphans() (int64, error) {
	result := r.db.
		Where("student_id NOT IN (?)", r.db.Model(&models.Student{}).Select("student_id")).
		Delete(&models.Reward{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphan rewards: %w", result.Error)
	}
	return result.RowsAffected, nil
}
