// Package games provides REST API handlers for score submission and
// leaderboards.
package games

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arcade-night/arcade-backend/internal/models"
	"github.com/arcade-night/arcade-backend/internal/service/leaderboard"
	"github.com/arcade-night/arcade-backend/internal/service/scores"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

// SubmitService interface for the submission pipeline.
type SubmitService interface {
	Submit(ctx context.Context, gameName, studentID string, value, playTime int) (*scores.SubmitResult, error)
}

// LeaderboardService interface for leaderboard queries.
type LeaderboardService interface {
	GetRankings(ctx context.Context, gameName string, skip, limit int) ([]leaderboard.Entry, int, error)
	GetTopN(ctx context.Context, gameName string, n int) ([]leaderboard.Entry, error)
}

// Handler handles game API requests.
type Handler struct {
	submitService      SubmitService
	leaderboardService LeaderboardService
	log                *logger.Logger
}

// NewHandler creates a new games handler.
func NewHandler(submitService *scores.Service, leaderboardService *leaderboard.Service, log *logger.Logger) *Handler {
	return &Handler{
		submitService:      submitService,
		leaderboardService: leaderboardService,
		log:                log,
	}
}

// NewHandlerWithInterfaces creates a new games handler with interface
// dependencies (useful for testing).
func NewHandlerWithInterfaces(submitService SubmitService, leaderboardService LeaderboardService, log *logger.Logger) *Handler {
	return &Handler{
		submitService:      submitService,
		leaderboardService: leaderboardService,
		log:                log,
	}
}

type submitRequest struct {
	StudentID *string `json:"studentId"`
	Score     *int    `json:"score"`
	PlayTime  int     `json:"playTime"`
}

// SubmitScore handles a score submission.
// POST /api/games/:gameName/scores.
func (h *Handler) SubmitScore(c *gin.Context) {
	gameName := c.Param("gameName")

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StudentID == nil || req.Score == nil {
		h.errorResponse(c, http.StatusBadRequest, "studentId and score are required")
		return
	}
	if !models.ValidStudentID(*req.StudentID) {
		h.errorResponse(c, http.StatusBadRequest, "studentId must be a 5-digit number")
		return
	}

	result, err := h.submitService.Submit(c.Request.Context(), gameName, *req.StudentID, *req.Score, req.PlayTime)
	if err != nil {
		h.log.Error().Err(err).
			Str("game", gameName).
			Str("student_id", *req.StudentID).
			Msg("Failed to process score submission")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to submit score")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRankings returns one page of a game's full leaderboard.
// GET /api/games/:gameName/rankings?limit=&skip=.
func (h *Handler) GetRankings(c *gin.Context) {
	gameName := c.Param("gameName")

	limit, err := h.parseLimit(c, 50)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	skip, err := h.parseSkip(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rankings, total, err := h.leaderboardService.GetRankings(c.Request.Context(), gameName, skip, limit)
	if err != nil {
		h.log.Error().Err(err).Str("game", gameName).Msg("Failed to get rankings")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve rankings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gameName": gameName,
		"total":    total,
		"limit":    limit,
		"skip":     skip,
		"rankings": rankings,
	})
}

// GetTopN returns the top N entries of a game's leaderboard.
// GET /api/games/:gameName/top/:topN.
func (h *Handler) GetTopN(c *gin.Context) {
	gameName := c.Param("gameName")

	topN, err := strconv.Atoi(c.Param("topN"))
	if err != nil || topN < 1 {
		h.errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid topN: %s", c.Param("topN")))
		return
	}
	if topN > 1000 {
		h.errorResponse(c, http.StatusBadRequest, "topN cannot exceed 1000")
		return
	}

	rankings, err := h.leaderboardService.GetTopN(c.Request.Context(), gameName, topN)
	if err != nil {
		h.log.Error().Err(err).Str("game", gameName).Msg("Failed to get top rankings")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve rankings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gameName": gameName,
		"topN":     topN,
		"rankings": rankings,
	})
}

// parseLimit extracts and validates the limit query parameter.
func (h *Handler) parseLimit(c *gin.Context, defaultLimit int) (int, error) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, fmt.Errorf("invalid limit parameter: %s", limitStr)
	}
	if limit < 1 {
		return 0, fmt.Errorf("limit must be greater than 0")
	}
	if limit > 1000 {
		return 0, fmt.Errorf("limit cannot exceed 1000")
	}
	return limit, nil
}

// parseSkip extracts and validates the skip query parameter.
func (h *Handler) parseSkip(c *gin.Context) (int, error) {
	skipStr := c.Query("skip")
	if skipStr == "" {
		return 0, nil
	}

	skip, err := strconv.Atoi(skipStr)
	if err != nil || skip < 0 {
		return 0, fmt.Errorf("invalid skip parameter: %s", skipStr)
	}
	return skip, nil
}

// errorResponse sends a standardized error response.
func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":     message,
		"timestamp": time.Now().UTC(),
	})
}
