package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailSender delivers jobs through SendGrid.
type EmailSender struct {
	client mailClient
	from   *mail.Email
}

// NewEmailSender returns nil when no API key is configured.
func NewEmailSender(apiKey, fromEmail, fromName string) *EmailSender {
	if apiKey == "" {
		return nil
	}
	return &EmailSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
}

func (e *EmailSender) Send(ctx context.Context, job Job) error {
	to := mail.NewEmail(job.Name, job.To)
	message := mail.NewSingleEmail(e.from, job.Subject, to, job.Body, "")

	resp, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
