package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"mechanicbook/config"
	"mechanicbook/models"
	"mechanicbook/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type fakeTwilio struct {
	got *openapi.CreateMessageParams
	err error
}

func (f *fakeTwilio) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

type fakeQueue struct {
	task *asynq.Task
	err  error
}

func (f *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task = task
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func TestBookingReceivedMessage(t *testing.T) {
	assert.Equal(t,
		"Thanks Jane Doe, your booking request (AB12CDE) has been received. We'll confirm shortly.",
		BookingReceivedMessage(" Jane Doe ", "ab12cde"))
}

func TestTwilioNotifier(t *testing.T) {
	api := &fakeTwilio{}
	n := &TwilioNotifier{api: api, from: "+15005550006"}

	res, err := n.SendSMS(context.Background(), " 07700900123 ", "hello")
	require.NoError(t, err)
	assert.Equal(t, models.SMSResult{SID: "SM123", To: "07700900123"}, res)
	require.NotNil(t, api.got)
	assert.Equal(t, "07700900123", *api.got.To)
	assert.Equal(t, "+15005550006", *api.got.From)
	assert.Equal(t, "hello", *api.got.Body)
}

func TestTwilioNotifierErrors(t *testing.T) {
	n := &TwilioNotifier{api: &fakeTwilio{err: errors.New("boom")}}

	_, err := n.SendSMS(context.Background(), "", "hello")
	assert.ErrorIs(t, err, ErrNoRecipient)

	_, err = n.SendSMS(context.Background(), "07700900123", "hello")
	assert.EqualError(t, err, "failed to send sms: boom")
}

func TestQueuedNotifier(t *testing.T) {
	q := &fakeQueue{}
	n := &QueuedNotifier{queue: q}

	res, err := n.SendSMS(context.Background(), "07700900123", "hello")
	require.NoError(t, err)
	assert.True(t, res.Queued)
	assert.Equal(t, "task-1", res.SID)
	require.NotNil(t, q.task)
	assert.Equal(t, tasks.TypeSendSMS, q.task.Type())

	var p models.SMSPayload
	require.NoError(t, json.Unmarshal(q.task.Payload(), &p))
	assert.Equal(t, models.SMSPayload{To: "07700900123", Body: "hello"}, p)
}

func TestQueuedNotifierEnqueueFailure(t *testing.T) {
	n := &QueuedNotifier{queue: &fakeQueue{err: errors.New("redis down")}}
	_, err := n.SendSMS(context.Background(), "07700900123", "hello")
	assert.EqualError(t, err, "failed to enqueue sms: redis down")
}

func TestNewSMSNotifier(t *testing.T) {
	log := zap.NewNop()

	n := NewSMSNotifier(config.Config{}, nil, log)
	res, err := n.SendSMS(context.Background(), "07700900123", "hello")
	require.NoError(t, err)
	assert.Equal(t, models.SMSResult{To: "07700900123", Skipped: true, Reason: "Twilio not configured"}, res)

	cfg := config.Config{TwilioAccountSID: "AC1", TwilioAuthToken: "tok", TwilioFromNumber: "+1"}
	assert.IsType(t, &TwilioNotifier{}, NewSMSNotifier(cfg, nil, log))

	cfg.SMSAsync = true
	assert.IsType(t, &TwilioNotifier{}, NewSMSNotifier(cfg, nil, log), "no queue client falls back to inline sends")
}
