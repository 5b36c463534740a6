package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
)

// parseSchedule builds the recurrence for an RRULE string.
// A rule without DTSTART is anchored at from.
func parseSchedule(rule string, from time.Time) (*rrule.RRule, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule rrule: %w", err)
	}
	if opt.Dtstart.IsZero() {
		opt.Dtstart = from
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule rrule: %w", err)
	}
	return r, nil
}

// NextRuns returns up to count occurrences of rule strictly after from.
// Fewer are returned when the rule ends first.
func NextRuns(rule string, from time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	r, err := parseSchedule(rule, from)
	if err != nil {
		return nil, err
	}

	runs := make([]time.Time, 0, count)
	next := from
	for len(runs) < count {
		next = r.After(next, false)
		if next.IsZero() {
			break
		}
		runs = append(runs, next)
	}

	return runs, nil
}

// RunOnSchedule calls run at every occurrence of rule until ctx is cancelled or the rule ends.
// A failed run is logged and does not stop the schedule.
func RunOnSchedule(ctx context.Context, rule string, logger *zap.Logger, run func(ctx context.Context) error) error {
	r, err := parseSchedule(rule, time.Now())
	if err != nil {
		return err
	}

	for {
		next := r.After(time.Now(), false)
		if next.IsZero() {
			logger.Info("Schedule has no further occurrences")
			return nil
		}

		logger.Info("Waiting for next scheduled run", zap.Time("next_run", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := run(ctx); err != nil {
			logger.Error("Scheduled run failed", zap.Error(err))
		}
	}
}
