package models

import (
	"time"
)

// Score is an immutable score submission event. Every submission is
// appended; a student's current score for a game is always derived as the
// maximum over their Score rows, never stored.
type Score struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"column:student_id;not null;index;index:idx_scores_game_student,priority:2;size:5" json:"studentId"`
	GameName  string    `gorm:"not null;index;index:idx_scores_game_score,priority:1;index:idx_scores_game_student,priority:1;size:100" json:"gameName"`
	Score     int       `gorm:"not null;index:idx_scores_game_score,priority:2,sort:desc" json:"score"`
	PlayTime  int       `gorm:"default:0" json:"playTime"` // seconds
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for Score model.
func (Score) TableName() string {
	return "scores"
}
