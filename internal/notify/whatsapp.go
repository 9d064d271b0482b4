package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// WhatsAppSender delivers jobs through the Twilio WhatsApp API.
type WhatsAppSender struct {
	api  messageCreator
	from string
}

// NewWhatsAppSender returns nil when credentials are missing so the channel
// stays disabled.
func NewWhatsAppSender(accountSID, authToken, from string) *WhatsAppSender {
	if accountSID == "" || authToken == "" || from == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &WhatsAppSender{api: client.Api, from: from}
}

func (w *WhatsAppSender) Send(_ context.Context, job Job) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsappAddress(job.To))
	params.SetFrom(whatsappAddress(w.from))
	params.SetBody(job.Body)

	resp, err := w.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	if resp != nil && resp.ErrorMessage != nil {
		return fmt.Errorf("twilio: %s", *resp.ErrorMessage)
	}
	return nil
}

func whatsappAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
