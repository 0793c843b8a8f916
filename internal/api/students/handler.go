// Package students provides REST API handlers for login, student accounts
// and reward claims.
package students

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arcade-night/arcade-backend/internal/metrics"
	"github.com/arcade-night/arcade-backend/internal/models"
	"github.com/arcade-night/arcade-backend/internal/repository"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

// StudentRepository interface for student operations.
type StudentRepository interface {
	Login(studentID, name string) (*models.Student, bool, error)
	GetByStudentID(studentID string) (*models.Student, error)
	Delete(studentID string) error
}

// RewardRepository interface for reward operations.
type RewardRepository interface {
	GetByStudent(studentID string) ([]models.Reward, error)
	GetByID(id uint) (*models.Reward, error)
	Claim(id uint) (*models.Reward, error)
}

// Handler handles student API requests.
type Handler struct {
	studentRepo StudentRepository
	rewardRepo  RewardRepository
	log         *logger.Logger
}

// NewHandler creates a new students handler.
func NewHandler(studentRepo *repository.StudentRepository, rewardRepo *repository.RewardRepository, log *logger.Logger) *Handler {
	return &Handler{
		studentRepo: studentRepo,
		rewardRepo:  rewardRepo,
		log:         log,
	}
}

// NewHandlerWithInterfaces creates a new students handler with interface
// dependencies (useful for testing).
func NewHandlerWithInterfaces(studentRepo StudentRepository, rewardRepo RewardRepository, log *logger.Logger) *Handler {
	return &Handler{
		studentRepo: studentRepo,
		rewardRepo:  rewardRepo,
		log:         log,
	}
}

type loginRequest struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
}

// Login creates the student on first login or updates their display name.
// POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !models.ValidStudentID(req.StudentID) {
		h.errorResponse(c, http.StatusBadRequest, "studentId must be a 5-digit number")
		return
	}
	if !models.ValidStudentName(req.Name) {
		h.errorResponse(c, http.StatusBadRequest, "name must be 2-3 characters")
		return
	}

	student, created, err := h.studentRepo.Login(req.StudentID, req.Name)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", req.StudentID).Msg("Failed to log student in")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	metrics.RecordLogin(created)
	h.log.Info().
		Str("student_id", student.StudentID).
		Bool("created", created).
		Msg("Student logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"created": created,
		"student": student,
	})
}

// GetStudent returns a student with a reward summary.
// GET /api/students/:studentId.
func (h *Handler) GetStudent(c *gin.Context) {
	studentID := c.Param("studentId")

	student, err := h.studentRepo.GetByStudentID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, http.StatusNotFound, "student not found")
			return
		}
		h.log.Error().Err(err).Str("student_id", studentID).Msg("Failed to get student")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve student")
		return
	}

	rewards, err := h.rewardRepo.GetByStudent(studentID)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", studentID).Msg("Failed to get rewards")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve student")
		return
	}

	unclaimed := 0
	for _, r := range rewards {
		if !r.Claimed {
			unclaimed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"student":          student,
		"totalRewards":     len(rewards),
		"unclaimedRewards": unclaimed,
	})
}

// GetRewards returns all rewards earned by a student, newest first.
// GET /api/students/:studentId/rewards.
func (h *Handler) GetRewards(c *gin.Context) {
	studentID := c.Param("studentId")

	if _, err := h.studentRepo.GetByStudentID(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, http.StatusNotFound, "student not found")
			return
		}
		h.log.Error().Err(err).Str("student_id", studentID).Msg("Failed to get student")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve rewards")
		return
	}

	rewards, err := h.rewardRepo.GetByStudent(studentID)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", studentID).Msg("Failed to get rewards")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve rewards")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studentId": studentID,
		"total":     len(rewards),
		"rewards":   rewards,
	})
}

// ClaimReward marks a reward as claimed, exactly once.
// POST /api/students/:studentId/rewards/:rewardId/claim.
func (h *Handler) ClaimReward(c *gin.Context) {
	studentID := c.Param("studentId")

	rewardID, err := strconv.ParseUint(c.Param("rewardId"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid reward ID")
		return
	}

	reward, err := h.rewardRepo.GetByID(uint(rewardID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, http.StatusNotFound, "reward not found")
			return
		}
		h.log.Error().Err(err).Uint64("reward_id", rewardID).Msg("Failed to get reward")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to claim reward")
		return
	}
	if reward.StudentID != studentID {
		h.errorResponse(c, http.StatusNotFound, "reward not found")
		return
	}

	claimed, err := h.rewardRepo.Claim(uint(rewardID))
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyClaimed) {
			h.errorResponse(c, http.StatusBadRequest, "reward already claimed")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, http.StatusNotFound, "reward not found")
			return
		}
		h.log.Error().Err(err).Uint64("reward_id", rewardID).Msg("Failed to claim reward")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to claim reward")
		return
	}

	h.log.Info().
		Str("student_id", studentID).
		Uint("reward_id", claimed.ID).
		Str("title", claimed.Title).
		Msg("Reward claimed")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reward":  claimed,
	})
}

// DeleteStudent removes a student and cascades their scores and rewards.
// DELETE /api/students/:studentId.
func (h *Handler) DeleteStudent(c *gin.Context) {
	studentID := c.Param("studentId")

	if err := h.studentRepo.Delete(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.errorResponse(c, http.StatusNotFound, "student not found")
			return
		}
		h.log.Error().Err(err).Str("student_id", studentID).Msg("Failed to delete student")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to delete student")
		return
	}

	h.log.Info().Str("student_id", studentID).Msg("Student deleted")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// errorResponse sends a standardized error response.
func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":     message,
		"timestamp": time.Now().UTC(),
	})
}
