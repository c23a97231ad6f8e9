package notification

import (
	"context"
	"fmt"
	"strings"

	"mechanicbook/models"
	"mechanicbook/services/tasks"

	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedNotifier hands SMS to the asynq worker (see cron.InitSMSWorker).
type QueuedNotifier struct {
	queue enqueuer
}

func NewQueuedNotifier(client *asynq.Client) *QueuedNotifier {
	return &QueuedNotifier{queue: client}
}

func (q *QueuedNotifier) SendSMS(ctx context.Context, to, body string) (models.SMSResult, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return models.SMSResult{}, ErrNoRecipient
	}
	task, opts, err := tasks.NewSMSTask(models.SMSPayload{To: to, Body: body})
	if err != nil {
		return models.SMSResult{To: to}, fmt.Errorf("failed to build sms task: %w", err)
	}
	info, err := q.queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return models.SMSResult{To: to}, fmt.Errorf("failed to enqueue sms: %w", err)
	}
	return models.SMSResult{To: to, Queued: true, SID: info.ID}, nil
}
