package cron

import (
	"context"
	"encoding/json"
	"time"

	"eventra/config"
	"eventra/models"
	"eventra/services/email"
	"eventra/services/tasks"
	"eventra/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEmailWorker runs the async email-delivery worker in background.
func InitEmailWorker(mailer *email.Mailer) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailDeliver, handleEmailTask(mailer))

	go monitorRedisConnection()

	go func() {
		logger.Info("starting email worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("email worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err),
				)
				if attempts == maxAttempts {
					logger.Fatal("email worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(mailer *email.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.EmailDeliveryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("email task: invalid payload", zap.Error(err))
			return err
		}

		if err := mailer.Deliver(ctx, p); err != nil {
			logger.Error("email task: delivery failed",
				zap.String("notification", p.NotificationID),
				zap.String("to", p.Email),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("email worker: redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
