package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"caresched/config"
	bookingRepo "caresched/database/repository/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingSweep = "bookings:sweep"

// InitBookingSweeper runs the async worker and its schedule in background.
// The sweep flips booked bookings whose end has passed (plus a grace period)
// to completed. Nothing else produces terminal states outside cancellation.
func InitBookingSweeper(repo bookingRepo.BookingRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingSweep, handleSweepTask(repo, logger))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[BookingSweeper] failed to start worker: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, nil)
	interval := config.AppConfig.SweepIntervalMin
	if interval <= 0 {
		interval = 15
	}
	spec := fmt.Sprintf("@every %dm", interval)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeBookingSweep, nil)); err != nil {
		log.Fatalf("[BookingSweeper] failed to register schedule: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[BookingSweeper] failed to start scheduler: %v", err)
		}
	}()
}

func handleSweepTask(repo bookingRepo.BookingRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		grace := time.Duration(config.AppConfig.SweepGraceMin) * time.Minute
		cutoff := time.Now().Add(-grace)

		n, err := repo.MarkElapsedCompleted(cutoff)
		if err != nil {
			logger.Error("booking sweep failed", zap.Error(err))
			return err
		}
		if n > 0 {
			logger.Info("booking sweep completed elapsed bookings", zap.Int64("count", n))
		}
		return nil
	}
}
