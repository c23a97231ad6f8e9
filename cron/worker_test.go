package cron

import (
	"context"
	"errors"
	"testing"

	"mechanicbook/models"
	"mechanicbook/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	to, body string
	result   models.SMSResult
	err      error
}

func (r *recordingSender) SendSMS(_ context.Context, to, body string) (models.SMSResult, error) {
	r.to, r.body = to, body
	return r.result, r.err
}

func TestHandleSMSTask(t *testing.T) {
	sender := &recordingSender{result: models.SMSResult{SID: "SM1"}}
	task, _, err := tasks.NewSMSTask(models.SMSPayload{To: "07700900123", Body: "hi"})
	require.NoError(t, err)

	require.NoError(t, handleSMSTask(sender, zap.NewNop())(context.Background(), task))
	assert.Equal(t, "07700900123", sender.to)
	assert.Equal(t, "hi", sender.body)
}

func TestHandleSMSTaskPropagatesSendError(t *testing.T) {
	sender := &recordingSender{err: errors.New("twilio down")}
	task, _, err := tasks.NewSMSTask(models.SMSPayload{To: "07700900123", Body: "hi"})
	require.NoError(t, err)

	assert.EqualError(t, handleSMSTask(sender, zap.NewNop())(context.Background(), task), "twilio down")
}

func TestHandleSMSTaskBadPayload(t *testing.T) {
	sender := &recordingSender{}
	task := asynq.NewTask(tasks.TypeSendSMS, []byte("{"))

	assert.Error(t, handleSMSTask(sender, zap.NewNop())(context.Background(), task))
	assert.Empty(t, sender.to)
}
