package jobs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/services"
)

// StartScheduler runs the daily yield sweep in-process. The job itself skips
// weekends, so it is scheduled every day. Returns the scheduler so the caller
// can shut it down.
func StartScheduler(yields *services.YieldService) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	at := os.Getenv("YIELD_JOB_AT")
	if at == "" {
		at = "03:00"
	}
	var hour, minute int
	if _, err := fmt.Sscanf(at, "%d:%d", &hour, &minute); err != nil {
		return nil, fmt.Errorf("parse YIELD_JOB_AT %q: %w", at, err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			summary, err := yields.ProcessDailyYields(ctx)
			if err != nil {
				logging.Sugar().Errorf("daily yield job: %v", err)
				return
			}
			logging.Sugar().Infof("daily yield job: paid=%d matured=%d errors=%d weekend=%v",
				summary.YieldsPaid, summary.InvestmentsMatured, summary.Errors, summary.Weekend)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("register daily yield job: %w", err)
	}

	scheduler.Start()
	logging.Sugar().Infof("scheduler started, daily yield job at %02d:%02d", hour, minute)
	return scheduler, nil
}
