package leaderboard

import (
	"math"
)

// Standing describes a submitter's position in a game's ordering. The
// best-score figures (MyRank, Percentile, TopPercentile) and the
// submitted-score figures (CurrentScoreRank, CurrentScoreTopPercentile) are
// computed independently: they diverge whenever the submission is not a new
// personal best.
type Standing struct {
	MyRank                    int     `json:"myRank"`
	TotalPlayers              int     `json:"totalPlayers"`
	BestScore                 int     `json:"myBestScore"`
	Percentile                float64 `json:"percentile"`
	TopPercentile             float64 `json:"topPercentile"`
	CurrentScoreRank          int     `json:"currentScoreRank"`
	CurrentScoreTopPercentile float64 `json:"currentScoreTopPercentile"`
}

// ComputeStanding derives the submitter's standing from a full ordering and
// the score value just submitted.
func ComputeStanding(order []Entry, studentID string, submitted int) Standing {
	st := Standing{TotalPlayers: len(order)}

	for _, e := range order {
		if e.StudentID == studentID {
			st.MyRank = e.Rank
			st.BestScore = e.Score
			break
		}
	}

	if st.MyRank == 0 && st.TotalPlayers > 0 {
		// Absent submitter; must not occur right after persisting their
		// score, but keep the figures sane rather than above 100%.
		st.Percentile = 0
		st.TopPercentile = 100
	} else {
		st.Percentile = Percentile(st.MyRank, st.TotalPlayers)
		st.TopPercentile = round1(100 - st.Percentile)
	}

	// Rank of the just-submitted value: one past the entries strictly
	// above it, independent of whether it is the student's best.
	greater := 0
	for _, e := range order {
		if e.Score > submitted {
			greater++
		}
	}
	st.CurrentScoreRank = greater + 1
	st.CurrentScoreTopPercentile = round1(100 - Percentile(st.CurrentScoreRank, st.TotalPlayers))

	return st
}

// Percentile computes this system's percentile figure for a 1-based rank:
// (totalPlayers - rank + 1) / totalPlayers * 100, one decimal. Rank 1 of N
// is 100%. Defined as 100.0 when totalPlayers is zero.
func Percentile(rank, totalPlayers int) float64 {
	if totalPlayers == 0 {
		return 100.0
	}
	return round1(float64(totalPlayers-rank+1) / float64(totalPlayers) * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
