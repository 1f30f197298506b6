// Package smtp delivers documents over SMTP.
package smtp

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/quantonganh/codebinge"
)

// Dialer opens a connection and sends messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailer struct {
	from   string
	dialer Dialer
}

// NewMailer returns a Mailer configured from the SMTP section of config
func NewMailer(config *codebinge.Config) codebinge.Mailer {
	d := gomail.NewDialer(config.SMTP.Host, config.SMTP.Port, config.SMTP.Username, config.SMTP.Password)
	d.SSL = config.SMTP.Secure
	return NewMailerWithDialer(config.Mail.From, d)
}

func NewMailerWithDialer(from string, dialer Dialer) codebinge.Mailer {
	return &mailer{
		from:   from,
		dialer: dialer,
	}
}

// Send sends doc to a single recipient with a plain-text part and an HTML alternative
func (m *mailer) Send(ctx context.Context, to string, doc *codebinge.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := newMessage(m.from, to, doc)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Errorf("failed to send mail to %s: %v", to, err)
	}

	return nil
}

func newMessage(from, to string, doc *codebinge.Document) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", doc.Subject)
	msg.SetBody("text/plain", doc.Text)
	msg.AddAlternative("text/html", doc.HTML)
	return msg
}
