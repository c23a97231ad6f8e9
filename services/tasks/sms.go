package tasks

import (
	"encoding/json"
	"time"

	"mechanicbook/models"

	"github.com/hibiken/asynq"
)

const TypeSendSMS = "sms:send"

// NewSMSTask wraps an SMS for the worker. Delivery is best-effort, so the task is never retried.
func NewSMSTask(payload models.SMSPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendSMS, b)
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}
