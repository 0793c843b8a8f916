// Package models defines domain models for the arcade backend.
package models

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// Student represents a student account created on first login.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"column:student_id;uniqueIndex;not null;size:5" json:"studentId"`
	Name      string    `gorm:"not null;size:12" json:"name"` // display name, not unique
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Student model.
func (Student) TableName() string {
	return "students"
}

var studentIDPattern = regexp.MustCompile(`^[0-9]{5}$`)

// ValidStudentID reports whether id is a well-formed 5-digit student number.
func ValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

// ValidStudentName reports whether name is a 2-3 character display name.
func ValidStudentName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 2 && n <= 3
}
