package enquiry

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shreeji-electro/catalog-finder/pkg/messaging"
)

type Sink interface {
	Deliver(ctx context.Context, e *Enquiry) error
}

type AmqpSink struct {
	publisher messaging.Publisher
}

func NewAmqpSink(publisher messaging.Publisher) *AmqpSink {
	return &AmqpSink{publisher: publisher}
}

func (s *AmqpSink) Deliver(ctx context.Context, e *Enquiry) error {
	return s.publisher.Publish(ctx, messaging.EnquiryTopic, e)
}

type emailClient interface {
	Send(message *mail.SGMailV3) (*rest.Response, error)
}

type EmailConfig struct {
	ApiKey   string `mapstructure:"sendgrid_key"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	To       string `mapstructure:"to"`
}

type EmailSink struct {
	client emailClient
	from   *mail.Email
	to     *mail.Email
}

func NewEmailSink(cfg EmailConfig) *EmailSink {
	return newEmailSink(sendgrid.NewSendClient(cfg.ApiKey), cfg)
}

func newEmailSink(client emailClient, cfg EmailConfig) *EmailSink {
	return &EmailSink{
		client: client,
		from:   mail.NewEmail(cfg.FromName, cfg.From),
		to:     mail.NewEmail("Sales", cfg.To),
	}
}

func (s *EmailSink) Deliver(ctx context.Context, e *Enquiry) error {
	text := e.PlainText()
	htmlContent := "<pre>" + html.EscapeString(text) + "</pre>"
	message := mail.NewSingleEmail(s.from, e.Subject(), s.to, text, htmlContent)
	message.SetReplyTo(mail.NewEmail(e.Name, e.Email))
	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("send enquiry email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("send enquiry email: status %d: %s", response.StatusCode, strings.TrimSpace(response.Body))
	}
	return nil
}

type LogSink struct{}

func (LogSink) Deliver(ctx context.Context, e *Enquiry) error {
	log.Info().Str("id", e.Id).Str("product", e.ProductName).Str("email", e.Email).Msg("enquiry received")
	return nil
}

// MultiSink delivers to every sink and fails when any of them failed.
type MultiSink []Sink

func (m MultiSink) Deliver(ctx context.Context, e *Enquiry) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Deliver(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
