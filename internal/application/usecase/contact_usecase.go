// internal/application/usecase/contact_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"
)

var (
	ErrContactInvalidArgument = errors.New("contact_usecase: invalid argument")

	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// Mailer is the outbound mail port.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, plainBody, htmlBody string) error
}

// ContactUsecase forwards storefront contact messages to the shop inbox and
// sends the visitor an auto-reply.
type ContactUsecase struct {
	mailer      Mailer
	shopContact string
	siteName    string
}

func NewContactUsecase(mailer Mailer, shopContact, siteName string) *ContactUsecase {
	return &ContactUsecase{mailer: mailer, shopContact: shopContact, siteName: siteName}
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (in *ContactInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrContactInvalidArgument)
	case !emailRe.MatchString(in.Email):
		return fmt.Errorf("%w: invalid email", ErrContactInvalidArgument)
	case in.Message == "":
		return fmt.Errorf("%w: message is required", ErrContactInvalidArgument)
	}
	return nil
}

// Submit validates the message, mails it to the shop and auto-replies to the
// sender. An auto-reply failure is logged but does not fail the submission:
// the shop already has the message.
func (u *ContactUsecase) Submit(ctx context.Context, in ContactInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if u.mailer == nil || strings.TrimSpace(u.shopContact) == "" {
		return errors.New("contact_usecase: mailer is not configured")
	}

	subject := fmt.Sprintf("[%s] Contact from %s", u.siteName, in.Name)
	plain := fmt.Sprintf("From: %s <%s>\n\n%s", in.Name, in.Email, in.Message)
	htmlBody := fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><pre>%s</pre>",
		html.EscapeString(in.Name), html.EscapeString(in.Email), html.EscapeString(in.Message))
	if err := u.mailer.Send(ctx, u.shopContact, u.shopContact, subject, plain, htmlBody); err != nil {
		return err
	}
	log.Printf("[contact_usecase] contact message forwarded from=%s", in.Email)

	replySubject := fmt.Sprintf("Thanks for contacting %s", u.siteName)
	replyPlain := fmt.Sprintf("Hi %s,\n\nWe received your message and will get back to you soon.\n\n%s", in.Name, u.siteName)
	if err := u.mailer.Send(ctx, u.shopContact, in.Email, replySubject, replyPlain, ""); err != nil {
		log.Printf("[contact_usecase] WARN auto-reply to %s failed: %v", in.Email, err)
	}
	return nil
}
