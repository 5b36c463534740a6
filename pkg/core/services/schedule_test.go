package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNextRuns_Weekly(t *testing.T) {
	// Wednesday
	from := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	runs, err := NextRuns("FREQ=WEEKLY;BYDAY=MO", from, 3)
	require.NoError(t, err)

	expected := []time.Time{
		time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
	}
	require.Len(t, runs, 3)
	for i := range expected {
		assert.True(t, expected[i].Equal(runs[i]), "run %d: want %s got %s", i, expected[i], runs[i])
	}
}

func TestNextRuns_DailyAtHour(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	runs, err := NextRuns("FREQ=DAILY;BYHOUR=8;BYMINUTE=0;BYSECOND=0", from, 2)
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.True(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC).Equal(runs[0]))
	assert.True(t, time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC).Equal(runs[1]))
}

func TestNextRuns_RuleEndsEarly(t *testing.T) {
	from := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	runs, err := NextRuns("FREQ=DAILY;COUNT=2", from, 5)
	require.NoError(t, err)

	// dtstart is the first occurrence, so only one remains after it
	assert.Len(t, runs, 1)
}

func TestNextRuns_Errors(t *testing.T) {
	_, err := NextRuns("INVALID_RRULE", time.Now(), 3)
	assert.Error(t, err)

	_, err = NextRuns("FREQ=DAILY", time.Now(), 0)
	assert.Error(t, err)
}

func TestRunOnSchedule_RunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs := 0
	err := RunOnSchedule(ctx, "FREQ=SECONDLY;INTERVAL=1", zap.NewNop(), func(ctx context.Context) error {
		runs++
		if runs == 2 {
			cancel()
		}
		return errBoom
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, runs, "a failed run does not stop the schedule")
}

func TestRunOnSchedule_InvalidRule(t *testing.T) {
	err := RunOnSchedule(context.Background(), "NOT_A_RULE", zap.NewNop(), func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}
