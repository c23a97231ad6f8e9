package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mechanicbook/config"
	"mechanicbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReasonNotConfigured is reported when no SMS provider credentials are set.
const ReasonNotConfigured = "Twilio not configured"

var (
	ErrNotConfigured = errors.New("sms provider is not configured")
	ErrNoRecipient   = errors.New("sms recipient is required")
)

// SMSNotifier sends a text message. A skipped send is not an error.
type SMSNotifier interface {
	SendSMS(ctx context.Context, to, body string) (models.SMSResult, error)
}

// BookingReceivedMessage is the confirmation text sent after a job is stored.
func BookingReceivedMessage(name, reg string) string {
	return fmt.Sprintf("Thanks %s, your booking request (%s) has been received. We'll confirm shortly.",
		strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(reg)))
}

// NewSMSNotifier picks a notifier from configuration. When SMS_ASYNC is set and a queue
// client is supplied, sends go through the worker instead of calling Twilio inline.
func NewSMSNotifier(cfg config.Config, queue *asynq.Client, logger *zap.Logger) SMSNotifier {
	if !cfg.TwilioConfigured() {
		logger.Warn("Twilio credentials missing, confirmation SMS will be skipped")
		return NoopNotifier{Reason: ReasonNotConfigured}
	}
	if cfg.SMSAsync && queue != nil {
		return NewQueuedNotifier(queue)
	}
	return NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
}

// NoopNotifier skips every send.
type NoopNotifier struct {
	Reason string
}

func (n NoopNotifier) SendSMS(_ context.Context, to, _ string) (models.SMSResult, error) {
	return models.SMSResult{To: to, Skipped: true, Reason: n.Reason}, nil
}
