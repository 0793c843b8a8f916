package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/arcade-night/arcade-backend/internal/models"
)

// StudentRepository handles student-related database operations.
type StudentRepository struct {
	db *DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create creates a new student.
func (r *StudentRepository) Create(student *models.Student) error {
	if err := r.db.Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// GetByStudentID retrieves a student by their 5-digit student number.
func (r *StudentRepository) GetByStudentID(studentID string) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("student_id = ?", studentID).First(&student).Error; err != nil {
		return nil, fmt.Errorf("failed to get student %s: %w", studentID, err)
	}
	return &student, nil
}

// Login creates the student on first login, or updates the display name if
// it changed. Returns the student and whether a new row was created.
func (r *StudentRepository) Login(studentID, name string) (*models.Student, bool, error) {
	var student models.Student
	err := r.db.Where("student_id = ?", studentID).First(&student).Error
	if err == nil {
		if student.Name != name {
			student.Name = name
			if err := r.db.Save(&student).Error; err != nil {
				return nil, false, fmt.Errorf("failed to update student name: %w", err)
			}
		}
		return &student, false, nil
	}

	student = models.Student{StudentID: studentID, Name: name}
	if err := r.db.Create(&student).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create student: %w", err)
	}
	return &student, true, nil
}

// List retrieves all students.
func (r *StudentRepository) List() ([]models.Student, error) {
	var students []models.Student
	if err := r.db.Order("student_id ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// DisplayNames resolves display names for a set of student numbers.
// Students deleted since scoring are simply absent from the result.
func (r *StudentRepository) DisplayNames(studentIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(studentIDs))
	if len(studentIDs) == 0 {
		return names, nil
	}

	var students []models.Student
	if err := r.db.Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve display names: %w", err)
	}
	for _, s := range students {
		names[s.StudentID] = s.Name
	}
	return names, nil
}

// Delete removes a student and all their scores and rewards in one
// transaction. No score or reward row may outlive its student.
func (r *StudentRepository) Delete(studentID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.Where("student_id = ?", studentID).First(&student).Error; err != nil {
			return fmt.Errorf("failed to get student %s: %w", studentID, err)
		}
		if err := tx.Where("student_id = ?", studentID).Delete(&models.Score{}).Error; err != nil {
			return fmt.Errorf("failed to delete scores: %w", err)
		}
		if err := tx.Where("student_id = ?", studentID).Delete(&models.Reward{}).Error; err != nil {
			return fmt.Errorf("failed to delete rewards: %w", err)
		}
		if err := tx.Delete(&student).Error; err != nil {
			return fmt.Errorf("failed to delete student: %w", err)
		}
		return nil
	})
}
