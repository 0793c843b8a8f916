// Package metrics provides Prometheus exporters for application metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the arcade backend.
var (
	// Counters.
	ScoresSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_scores_submitted_total",
			Help: "Total number of score submissions accepted",
		},
		[]string{"game"},
	)

	RewardsAwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_rewards_awarded_total",
			Help: "Total number of rewards granted",
		},
		[]string{"kind"},
	)

	RewardRefusalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_reward_refusals_total",
			Help: "Total number of reward grants refused by a cap or dedup check",
		},
		[]string{"reason"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_logins_total",
			Help: "Total number of logins",
		},
		[]string{"outcome"}, // "created" or "returning"
	)

	// Gauges.
	LeaderboardPlayers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arcade_leaderboard_players",
			Help: "Distinct players on a game's leaderboard at last computation",
		},
		[]string{"game"},
	)

	CleanupLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "arcade_cleanup_last_run_timestamp",
			Help: "Unix timestamp of the last orphan cleanup run",
		},
	)

	// Histograms.
	SubmissionDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arcade_score_submission_duration_seconds",
			Help:    "Time taken to process a score submission end to end",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
		},
		[]string{"game"},
	)

	// Cleanup metrics.
	OrphanRowsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_orphan_rows_deleted_total",
			Help: "Total orphan rows removed by the cleanup sweep",
		},
		[]string{"table"},
	)
)

// RecordScoreSubmitted records an accepted score submission.
func RecordScoreSubmitted(game string) {
	ScoresSubmittedTotal.WithLabelValues(game).Inc()
}

// RecordRewardAwarded records a granted reward.
func RecordRewardAwarded(kind string) {
	RewardsAwardedTotal.WithLabelValues(kind).Inc()
}

// RecordRewardRefusal records a reward grant refused by a cap or dedup check.
func RecordRewardRefusal(reason string) {
	RewardRefusalsTotal.WithLabelValues(reason).Inc()
}

// RecordLogin records a login, labeled by whether the student was created.
func RecordLogin(created bool) {
	if created {
		LoginsTotal.WithLabelValues("created").Inc()
	} else {
		LoginsTotal.WithLabelValues("returning").Inc()
	}
}

// SetLeaderboardPlayers sets the player count observed for a game.
func SetLeaderboardPlayers(game string, count int) {
	LeaderboardPlayers.WithLabelValues(game).Set(float64(count))
}

// SetCleanupLastRun sets the timestamp of the last cleanup run.
func SetCleanupLastRun() {
	CleanupLastRunTimestamp.SetToCurrentTime()
}

// ObserveSubmissionDuration observes submission processing time.
func ObserveSubmissionDuration(game string, seconds float64) {
	SubmissionDurationSeconds.WithLabelValues(game).Observe(seconds)
}

// RecordOrphansDeleted records orphan rows removed from a table.
func RecordOrphansDeleted(table string, count int64) {
	OrphanRowsDeletedTotal.WithLabelValues(table).Add(float64(count))
}
