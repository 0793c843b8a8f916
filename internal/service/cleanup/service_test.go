package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcade-night/arcade-backend/internal/config"
	"github.com/arcade-night/arcade-backend/pkg/logger"
	"github.com/arcade-night/arcade-backend/test/mocks"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json", "stdout")
}

func TestRunOnce(t *testing.T) {
	scoreCalls, rewardCalls := 0, 0
	scoreRepo := &mocks.MockScoreRepository{
		DeleteOrphansFunc: func() (int64, error) {
			scoreCalls++
			return 3, nil
		},
	}
	rewardRepo := &mocks.MockRewardRepository{
		DeleteOrphansFunc: func() (int64, error) {
			rewardCalls++
			return 1, nil
		},
	}

	cfg := &config.CleanupConfig{Enabled: true, Schedule: "@every 10m"}
	svc := NewServiceWithInterfaces(cfg, scoreRepo, rewardRepo, testLogger())

	svc.RunOnce()

	assert.Equal(t, 1, scoreCalls)
	assert.Equal(t, 1, rewardCalls)
}

func TestRunOnce_ScoreFailureDoesNotSkipRewards(t *testing.T) {
	rewardCalls := 0
	scoreRepo := &mocks.MockScoreRepository{
		DeleteOrphansFunc: func() (int64, error) { return 0, assert.AnError },
	}
	rewardRepo := &mocks.MockRewardRepository{
		DeleteOrphansFunc: func() (int64, error) {
			rewardCalls++
			return 0, nil
		},
	}

	cfg := &config.CleanupConfig{Enabled: true, Schedule: "@every 10m"}
	svc := NewServiceWithInterfaces(cfg, scoreRepo, rewardRepo, testLogger())

	svc.RunOnce()

	assert.Equal(t, 1, rewardCalls, "a failed score sweep should not skip the reward sweep")
}

func TestStart_Disabled(t *testing.T) {
	cfg := &config.CleanupConfig{Enabled: false}
	svc := NewServiceWithInterfaces(cfg, &mocks.MockScoreRepository{}, &mocks.MockRewardRepository{}, testLogger())

	require.NoError(t, svc.Start())
	svc.Stop()
}

func TestStart_BadSchedule(t *testing.T) {
	cfg := &config.CleanupConfig{Enabled: true, Schedule: "not a schedule"}
	svc := NewServiceWithInterfaces(cfg, &mocks.MockScoreRepository{}, &mocks.MockRewardRepository{}, testLogger())

	assert.Error(t, svc.Start())
}

func TestStartStop(t *testing.T) {
	cfg := &config.CleanupConfig{Enabled: true, Schedule: "@every 1h"}
	svc := NewServiceWithInterfaces(cfg, &mocks.MockScoreRepository{}, &mocks.MockRewardRepository{}, testLogger())

	require.NoError(t, svc.Start())
	svc.Stop()
}
