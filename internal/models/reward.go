package models

import (
	"fmt"
	"time"
)

// Reward represents a reward earned by a student. Only the claimed fields
// are mutable, and only once (false/nil to true/timestamp).
type Reward struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StudentID   string     `gorm:"column:student_id;not null;index;index:idx_rewards_student_earned,priority:1;size:5" json:"studentId"`
	Title       string     `gorm:"not null;size:100" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	EarnedAt    time.Time  `gorm:"not null;index:idx_rewards_student_earned,priority:2,sort:desc" json:"earnedAt"`
	Claimed     bool       `gorm:"default:false;index" json:"claimed"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
}

// TableName specifies the table name for Reward model.
func (Reward) TableName() string {
	return "rewards"
}

// Reward titles. The title identifies the reward kind; for the percentile
// reward the description additionally encodes the triggering game, which is
// the de-duplication key.
const (
	TitleFirstClear    = "First Game Clear"
	TitleTopPercentile = "Top Percentile Ranker"
)

// RewardKind is a closed set of reward variants. Each variant knows its own
// title, description and de-duplication semantics.
type RewardKind interface {
	Title() string
	Description() string
	rewardKind()
}

// FirstClear is the one-time reward for a student's first recorded score in
// any game. De-duplicated on title alone.
type FirstClear struct{}

// Title implements RewardKind.
func (FirstClear) Title() string { return TitleFirstClear }

// Description implements RewardKind.
func (FirstClear) Description() string {
	return "Awarded for clearing your first arcade game"
}

func (FirstClear) rewardKind() {}

// TopPercentile is the capped, per-game repeatable reward for ranking inside
// the top percentile threshold. De-duplicated on title plus description,
// which names the game.
type TopPercentile struct {
	Game      string
	Threshold int
}

// Title implements RewardKind.
func (TopPercentile) Title() string { return TitleTopPercentile }

// Description implements RewardKind.
func (p TopPercentile) Description() string {
	return fmt.Sprintf("Ranked in the top %d%% of %s", p.Threshold, p.Game)
}

func (p TopPercentile) rewardKind() {}

// NewReward materializes a reward row for a kind.
func NewReward(studentID string, kind RewardKind) *Reward {
	return &Reward{
		StudentID:   studentID,
		Title:       kind.Title(),
		Description: kind.Description(),
		EarnedAt:    time.Now(),
		Claimed:     false,
	}
}
