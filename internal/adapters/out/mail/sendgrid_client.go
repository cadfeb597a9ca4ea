// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient implements the contact mailer port.
type SendGridClient struct {
	apiKey   string
	fromName string
}

func NewSendGridClient(apiKey, fromName string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey, fromName: fromName}
}

// Send sends one email using SendGrid.
func (c *SendGridClient) Send(ctx context.Context, from, to, subject, plainBody, htmlBody string) error {
	if c == nil || c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	fromEmail := mail.NewEmail(c.fromName, from)
	toEmail := mail.NewEmail("", to)

	if htmlBody == "" {
		htmlBody = fmt.Sprintf("<pre>%s</pre>", plainBody)
	}

	message := mail.NewSingleEmail(fromEmail, subject, toEmail, plainBody, htmlBody)

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf(
			"sendgrid send failed: status=%d, body=%s",
			response.StatusCode,
			response.Body,
		)
	}

	log.Printf("[sendgrid] mail sent: status=%d to=%s subject=%s",
		response.StatusCode, to, subject)

	return nil
}
