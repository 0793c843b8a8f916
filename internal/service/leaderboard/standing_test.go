package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name         string
		rank         int
		totalPlayers int
		want         float64
	}{
		{"first of ten", 1, 10, 100.0},
		{"last of ten", 10, 10, 10.0},
		{"middle of three", 2, 3, 66.7},
		{"only player", 1, 1, 100.0},
		{"no players", 0, 0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentile(tt.rank, tt.totalPlayers))
		})
	}
}

func TestComputeStanding(t *testing.T) {
	order := []Entry{
		{Rank: 1, StudentID: "10002", Score: 80},
		{Rank: 2, StudentID: "10003", Score: 80},
		{Rank: 3, StudentID: "10001", Score: 70},
		{Rank: 4, StudentID: "10004", Score: 30},
	}

	// 10001's best is 70 (rank 3) but the submission was only 40: the
	// best-score and submitted-score figures must diverge.
	st := ComputeStanding(order, "10001", 40)

	assert.Equal(t, 3, st.MyRank)
	assert.Equal(t, 70, st.BestScore)
	assert.Equal(t, 4, st.TotalPlayers)
	assert.Equal(t, 50.0, st.Percentile)
	assert.Equal(t, 50.0, st.TopPercentile)

	// 40 sits below three entries, so the submitted value ranks fourth.
	assert.Equal(t, 4, st.CurrentScoreRank)
	assert.Equal(t, 75.0, st.CurrentScoreTopPercentile)
}

func TestComputeStanding_PersonalBest(t *testing.T) {
	order := []Entry{
		{Rank: 1, StudentID: "10001", Score: 90},
		{Rank: 2, StudentID: "10002", Score: 80},
	}

	st := ComputeStanding(order, "10001", 90)

	assert.Equal(t, 1, st.MyRank)
	assert.Equal(t, 100.0, st.Percentile)
	assert.Equal(t, 0.0, st.TopPercentile)
	assert.Equal(t, 1, st.CurrentScoreRank)
	assert.Equal(t, 0.0, st.CurrentScoreTopPercentile)
}

func TestComputeStanding_SinglePlayer(t *testing.T) {
	order := []Entry{{Rank: 1, StudentID: "10001", Score: 10}}

	st := ComputeStanding(order, "10001", 10)

	assert.Equal(t, 1, st.MyRank)
	assert.Equal(t, 1, st.TotalPlayers)
	assert.Equal(t, 100.0, st.Percentile)
	assert.Equal(t, 0.0, st.TopPercentile)
}

func TestComputeStanding_AbsentSubmitter(t *testing.T) {
	order := []Entry{{Rank: 1, StudentID: "10002", Score: 50}}

	st := ComputeStanding(order, "10001", 10)

	assert.Equal(t, 0, st.MyRank)
	assert.Equal(t, 0.0, st.Percentile)
	assert.Equal(t, 100.0, st.TopPercentile)
}
