package notification

import (
	"context"
	"fmt"
	"strings"

	"mechanicbook/models"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioNotifier sends SMS through the Twilio messages API.
type TwilioNotifier struct {
	api  messageCreator
	from string
}

func NewTwilioNotifier(accountSID, authToken, from string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from}
}

func (t *TwilioNotifier) SendSMS(ctx context.Context, to, body string) (models.SMSResult, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return models.SMSResult{}, ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return models.SMSResult{}, err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return models.SMSResult{To: to}, fmt.Errorf("failed to send sms: %w", err)
	}
	result := models.SMSResult{To: to}
	if resp != nil && resp.Sid != nil {
		result.SID = *resp.Sid
	}
	return result, nil
}
