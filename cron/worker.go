package cron

import (
	"context"
	"encoding/json"
	"time"

	"mechanicbook/config"
	"mechanicbook/models"
	"mechanicbook/services/notification"
	"mechanicbook/services/tasks"
	"mechanicbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the queue client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitSMSWorker runs the SMS worker in background until ctx is cancelled.
func InitSMSWorker(ctx context.Context, sender notification.SMSNotifier) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendSMS, handleSMSTask(sender, logger))

	go func() {
		logger.Info("[SMSWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				break
			}
			logger.Warn("[SMSWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				// Queued texts stay in Redis; the API keeps serving.
				logger.Error("[SMSWorker] max retry attempts reached, worker disabled")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}

		<-ctx.Done()
		srv.Shutdown()
		logger.Info("[SMSWorker] stopped")
	}()
}

func handleSMSTask(sender notification.SMSNotifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.SMSPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[SMSHandler] invalid payload", zap.Error(err))
			return err
		}

		res, err := sender.SendSMS(ctx, p.To, p.Body)
		if err != nil {
			logger.Warn("[SMSHandler] failed to send sms", zap.String("to", p.To), zap.Error(err))
			return err
		}
		if res.Skipped {
			logger.Info("[SMSHandler] sms skipped", zap.String("to", p.To), zap.String("reason", res.Reason))
			return nil
		}
		logger.Info("[SMSHandler] sms sent", zap.String("to", p.To), zap.String("sid", res.SID))
		return nil
	}
}
