package games

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcade-night/arcade-backend/internal/service/leaderboard"
	"github.com/arcade-night/arcade-backend/internal/service/scores"
	"github.com/arcade-night/arcade-backend/pkg/logger"
)

type mockSubmitService struct {
	result     *scores.SubmitResult
	err        error
	gotGame    string
	gotStudent string
	gotScore   int
}

func (m *mockSubmitService) Submit(_ context.Context, gameName, studentID string, value, _ int) (*scores.SubmitResult, error) {
	m.gotGame = gameName
	m.gotStudent = studentID
	m.gotScore = value
	return m.result, m.err
}

type mockLeaderboardService struct {
	entries []leaderboard.Entry
	total   int
	err     error
}

func (m *mockLeaderboardService) GetRankings(_ context.Context, _ string, _, _ int) ([]leaderboard.Entry, int, error) {
	return m.entries, m.total, m.err
}

func (m *mockLeaderboardService) GetTopN(_ context.Context, _ string, _ int) ([]leaderboard.Entry, error) {
	return m.entries, m.err
}

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/games/:gameName/scores", h.SubmitScore)
	r.GET("/api/games/:gameName/rankings", h.GetRankings)
	r.GET("/api/games/:gameName/top/:topN", h.GetTopN)
	return r
}

func testLogger() *logger.Logger {
	return logger.New("error", "json", "stdout")
}

func TestSubmitScore(t *testing.T) {
	submit := &mockSubmitService{
		result: &scores.SubmitResult{
			Success:       true,
			CurrentScore:  70,
			MyBestScore:   70,
			MyRank:        2,
			TotalPlayers:  5,
			Percentile:    80.0,
			TopPercentile: 20.0,
			NearbyRankings: []leaderboard.Entry{
				{Rank: 1, StudentID: "10002", Name: "영희", Score: 90},
				{Rank: 2, StudentID: "10001", Name: "철수", Score: 70, IsMe: true},
			},
			RewardEarned: true,
		},
	}
	h := NewHandlerWithInterfaces(submit, &mockLeaderboardService{}, testLogger())
	router := setupRouter(h)

	body := `{"studentId":"10001","score":70,"playTime":45}`
	req := httptest.NewRequest(http.MethodPost, "/api/games/snake/scores", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "snake", submit.gotGame)
	assert.Equal(t, "10001", submit.gotStudent)
	assert.Equal(t, 70, submit.gotScore)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(2), resp["myRank"])
	assert.Equal(t, 80.0, resp["percentile"])
	assert.Equal(t, true, resp["rewardEarned"])
	assert.Len(t, resp["nearbyRankings"], 2)
}

func TestSubmitScore_ZeroScore(t *testing.T) {
	// score 0 is a valid value and must not be mistaken for a missing field.
	submit := &mockSubmitService{result: &scores.SubmitResult{Success: true}}
	h := NewHandlerWithInterfaces(submit, &mockLeaderboardService{}, testLogger())
	router := setupRouter(h)

	body := `{"studentId":"10001","score":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/games/snake/scores", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, submit.gotScore)
}

func TestSubmitScore_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing studentId", `{"score":70}`},
		{"missing score", `{"studentId":"10001"}`},
		{"short studentId", `{"studentId":"1234","score":70}`},
		{"non-numeric studentId", `{"studentId":"abcde","score":70}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlerWithInterfaces(&mockSubmitService{}, &mockLeaderboardService{}, testLogger())
			router := setupRouter(h)

			req := httptest.NewRequest(http.MethodPost, "/api/games/snake/scores", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSubmitScore_ServiceFailure(t *testing.T) {
	submit := &mockSubmitService{err: assert.AnError}
	h := NewHandlerWithInterfaces(submit, &mockLeaderboardService{}, testLogger())
	router := setupRouter(h)

	body := `{"studentId":"10001","score":70}`
	req := httptest.NewRequest(http.MethodPost, "/api/games/snake/scores", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetRankings(t *testing.T) {
	board := &mockLeaderboardService{
		entries: []leaderboard.Entry{
			{Rank: 1, StudentID: "10002", Name: "영희", Score: 90},
			{Rank: 2, StudentID: "10001", Name: "철수", Score: 70},
		},
		total: 2,
	}
	h := NewHandlerWithInterfaces(&mockSubmitService{}, board, testLogger())
	router := setupRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/games/snake/rankings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "snake", resp["gameName"])
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, float64(50), resp["limit"])
	assert.Equal(t, float64(0), resp["skip"])
	assert.Len(t, resp["rankings"], 2)
}

func TestGetRankings_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"non-numeric limit", "/api/games/snake/rankings?limit=abc"},
		{"zero limit", "/api/games/snake/rankings?limit=0"},
		{"limit too large", "/api/games/snake/rankings?limit=1001"},
		{"negative skip", "/api/games/snake/rankings?skip=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlerWithInterfaces(&mockSubmitService{}, &mockLeaderboardService{}, testLogger())
			router := setupRouter(h)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetTopN(t *testing.T) {
	board := &mockLeaderboardService{
		entries: []leaderboard.Entry{
			{Rank: 1, StudentID: "10002", Name: "영희", Score: 90},
		},
	}
	h := NewHandlerWithInterfaces(&mockSubmitService{}, board, testLogger())
	router := setupRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/games/snake/top/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["topN"])
	assert.Len(t, resp["rankings"], 1)
}

func TestGetTopN_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"non-numeric", "/api/games/snake/top/abc"},
		{"zero", "/api/games/snake/top/0"},
		{"too large", "/api/games/snake/top/1001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlerWithInterfaces(&mockSubmitService{}, &mockLeaderboardService{}, testLogger())
			router := setupRouter(h)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
