// Package mocks provides simple hand-rolled mocks for repository and cache
// interfaces.
package mocks

import "github.com/arcade-night/arcade-backend/internal/models"

// MockScoreRepository is a simple mock for the score repository.
type MockScoreRepository struct {
	CreateFunc             func(score *models.Score) error
	GetByGameOrderedFunc   func(gameName string) ([]models.Score, error)
	CountDistinctGamesFunc func(studentID string) (int64, error)
	DeleteOrphansFunc      func() (int64, error)
}

func (m *MockScoreRepository) Create(score *models.Score) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(score)
	}
	return nil
}

func (m *MockScoreRepository) GetByGameOrdered(gameName string) ([]models.Score, error) {
	if m.GetByGameOrderedFunc != nil {
		return m.GetByGameOrderedFunc(gameName)
	}
	return []models.Score{}, nil
}

func (m *MockScoreRepository) CountDistinctGames(studentID string) (int64, error) {
	if m.CountDistinctGamesFunc != nil {
		return m.CountDistinctGamesFunc(studentID)
	}
	return 0, nil
}

func (m *MockScoreRepository) DeleteOrphans() (int64, error) {
	if m.DeleteOrphansFunc != nil {
		return m.DeleteOrphansFunc()
	}
	return 0, nil
}

// MockStudentRepository is a simple mock for the student repository.
type MockStudentRepository struct {
	LoginFunc          func(studentID, name string) (*models.Student, bool, error)
	GetByStudentIDFunc func(studentID string) (*models.Student, error)
	DisplayNamesFunc   func(studentIDs []string) (map[string]string, error)
	DeleteFunc         func(studentID string) error
}

func (m *MockStudentRepository) Login(studentID, name string) (*models.Student, bool, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(studentID, name)
	}
	return &models.Student{StudentID: studentID, Name: name}, false, nil
}

func (m *MockStudentRepository) GetByStudentID(studentID string) (*models.Student, error) {
	if m.GetByStudentIDFunc != nil {
		return m.GetByStudentIDFunc(studentID)
	}
	return &models.Student{StudentID: studentID}, nil
}

func (m *MockStudentRepository) DisplayNames(studentIDs []string) (map[string]string, error) {
	if m.DisplayNamesFunc != nil {
		return m.DisplayNamesFunc(studentIDs)
	}
	return map[string]string{}, nil
}

func (m *MockStudentRepository) Delete(studentID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(studentID)
	}
	return nil
}

// MockRewardRepository is a simple mock for the reward repository.
type MockRewardRepository struct {
	CreateFunc                 func(reward *models.Reward) error
	GetByIDFunc                func(id uint) (*models.Reward, error)
	GetByStudentFunc           func(studentID string) ([]models.Reward, error)
	HasRewardFunc              func(studentID, title string) (bool, error)
	HasRewardForGameFunc       func(studentID, title, description string) (bool, error)
	CountByStudentAndTitleFunc func(studentID, title string) (int64, error)
	CountByTitleFunc           func(title string) (int64, error)
	ClaimFunc                  func(id uint) (*models.Reward, error)
	DeleteOrphansFunc          func() (int64, error)
}

func (m *MockRewardRepository) Create(reward *models.Reward) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(reward)
	}
	return nil
}

func (m *MockRewardRepository) GetByID(id uint) (*models.Reward, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *MockRewardRepository) GetByStudent(studentID string) ([]models.Reward, error) {
	if m.GetByStudentFunc != nil {
		return m.GetByStudentFunc(studentID)
	}
	return []models.Reward{}, nil
}

func (m *MockRewardRepository) HasReward(studentID, title string) (bool, error) {
	if m.HasRewardFunc != nil {
		return m.HasRewardFunc(studentID, title)
	}
	return false, nil
}

func (m *MockRewardRepository) HasRewardForGame(studentID, title, description string) (bool, error) {
	if m.HasRewardForGameFunc != nil {
		return m.HasRewardForGameFunc(studentID, title, description)
	}
	return false, nil
}

func (m *MockRewardRepository) CountByStudentAndTitle(studentID, title string) (int64, error) {
	if m.CountByStudentAndTitleFunc != nil {
		return m.CountByStudentAndTitleFunc(studentID, title)
	}
	return 0, nil
}

func (m *MockRewardRepository) CountByTitle(title string) (int64, error) {
	if m.CountByTitleFunc != nil {
		return m.CountByTitleFunc(title)
	}
	return 0, nil
}

func (m *MockRewardRepository) Claim(id uint) (*models.Reward, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(id)
	}
	return nil, nil
}

func (m *MockRewardRepository) DeleteOrphans() (int64, error) {
	if m.DeleteOrphansFunc != nil {
		return m.DeleteOrphansFunc()
	}
	return 0, nil
}
