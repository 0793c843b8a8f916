package repository

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/arcade-night/arcade-backend/internal/models"
)

func createTestReward(t *testing.T, repo *RewardRepository, studentID string, kind models.RewardKind) *models.Reward {
	t.Helper()

	reward := models.NewReward(studentID, kind)
	if err := repo.Create(reward); err != nil {
		t.Fatalf("Failed to create test reward: %v", err)
	}
	return reward
}

func TestRewardRepository_Claim(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRewardRepository(db)

	reward := createTestReward(t, repo, "10001", models.FirstClear{})

	claimed, err := repo.Claim(reward.ID)
	if err != nil {
		t.Fatalf("Claim() failed: %v", err)
	}
	if !claimed.Claimed {
		t.Error("Expected claimed flag to be set")
	}
	if claimed.ClaimedAt == nil {
		t.Error("Expected claimedAt to be set")
	}

	// Second claim must refuse, not overwrite.
	_, err = repo.Claim(reward.ID)
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("Expected ErrAlreadyClaimed, got %v", err)
	}

	stored, err := repo.GetByID(reward.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if stored.ClaimedAt == nil || !stored.ClaimedAt.Equal(*claimed.ClaimedAt) {
		t.Error("Expected claimedAt to be unchanged by the refused claim")
	}
}

func TestRewardRepository_Claim_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRewardRepository(db)

	_, err := repo.Claim(12345)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestRewardRepository_HasRewardForGame(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRewardRepository(db)

	kind := models.TopPercentile{Game: "snake", Threshold: 20}
	createTestReward(t, repo, "10001", kind)

	exists, err := repo.HasRewardForGame("10001", kind.Title(), kind.Description())
	if err != nil {
		t.Fatalf("HasRewardForGame() failed: %v", err)
	}
	if !exists {
		t.Error("Expected reward for snake to exist")
	}

	other := models.TopPercentile{Game: "tetris", Threshold: 20}
	exists, err = repo.HasRewardForGame("10001", other.Title(), other.Description())
	if err != nil {
		t.Fatalf("HasRewardForGame() failed: %v", err)
	}
	if exists {
		t.Error("Expected no reward for tetris")
	}
}

func TestRewardRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRewardRepository(db)

	createTestReward(t, repo, "10001", models.TopPercentile{Game: "snake", Threshold: 20})
	createTestReward(t, repo, "10001", models.TopPercentile{Game: "tetris", Threshold: 20})
	createTestReward(t, repo, "10002", models.TopPercentile{Game: "snake", Threshold: 20})
	createTestReward(t, repo, "10001", models.FirstClear{})

	held, err := repo.CountByStudentAndTitle("10001", models.TitleTopPercentile)
	if err != nil {
		t.Fatalf("CountByStudentAndTitle() failed: %v", err)
	}
	if held != 2 {
		t.Errorf("Expected 2 percentile rewards for 10001, got %d", held)
	}

	total, err := repo.CountByTitle(models.TitleTopPercentile)
	if err != nil {
		t.Fatalf("CountByTitle() failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 percentile rewards in total, got %d", total)
	}
}

func TestRewardRepository_DeleteOrphans(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRewardRepository(db)

	createTestStudent(t, db, "10001", "영희")
	createTestReward(t, repo, "10001", models.FirstClear{})
	createTestReward(t, repo, "20002", models.FirstClear{})

	deleted, err := repo.DeleteOrphans()
	if err != nil {
		t.Fatalf("DeleteOrphans() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 orphan reward deleted, got %d", deleted)
	}

	rewards, err := repo.GetByStudent("10001")
	if err != nil {
		t.Fatalf("GetByStudent() failed: %v", err)
	}
	if len(rewards) != 1 {
		t.Errorf("Expected 10001's reward to survive, got %d rewards", len(rewards))
	}
}
