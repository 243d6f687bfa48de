package enquiry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnquiry() *Enquiry {
	return &Enquiry{
		Name:        "Ravi Patel",
		Email:       "ravi@example.com",
		Phone:       "+91 98765-43210",
		ProductName: "Polycab Elanza",
		PageURL:     "https://example.com/product/POLYCAB/Polycab%20Elanza",
	}
}

func TestValidate(t *testing.T) {
	e := validEnquiry()
	e.Normalize()
	require.NoError(t, e.Validate())
	assert.Equal(t, 1, e.Quantity)

	bad := &Enquiry{Email: "nope", Phone: "12", Quantity: -1, ProductName: "N/A"}
	bad.Normalize()
	err := bad.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"name":     "required",
		"email":    "not a valid email",
		"phone":    "not a valid phone number",
		"quantity": "must be at least 1",
		"message":  "required when no product is given",
	}, ve.Fields)
}

func TestValidateMessageLengthCountsCharacters(t *testing.T) {
	e := validEnquiry()
	e.Message = strings.Repeat("क", 4000)
	e.Normalize()
	assert.NoError(t, e.Validate())

	e.Message = strings.Repeat("क", 4001)
	var ve *ValidationError
	require.ErrorAs(t, e.Validate(), &ve)
	assert.Equal(t, "too long", ve.Fields["message"])
}

func TestPlainTextAndSubject(t *testing.T) {
	e := validEnquiry()
	e.Quantity = 4
	e.Message = "Need delivery in Ahmedabad"
	assert.Equal(t, "Enquiry: Polycab Elanza (4)", e.Subject())
	text := e.PlainText()
	assert.Contains(t, text, "Phone: +91 98765-43210\n")
	assert.Contains(t, text, "Quantity: 4\n")
	assert.True(t, strings.HasSuffix(text, "Need delivery in Ahmedabad\n"))
	assert.NotContains(t, text, "Found us via")
}

type fakeEmailClient struct {
	sent     []*mail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeEmailClient) Send(message *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, message)
	return f.response, f.err
}

func TestEmailSink(t *testing.T) {
	client := &fakeEmailClient{response: &rest.Response{StatusCode: 202}}
	sink := newEmailSink(client, EmailConfig{From: "noreply@example.com", FromName: "Catalog", To: "sales@example.com"})
	require.NoError(t, sink.Deliver(context.Background(), validEnquiry()))
	require.Len(t, client.sent, 1)
	msg := client.sent[0]
	assert.Equal(t, "Enquiry: Polycab Elanza (0)", msg.Subject)
	assert.Equal(t, "ravi@example.com", msg.ReplyTo.Address)
	assert.Equal(t, "sales@example.com", msg.Personalizations[0].To[0].Address)

	client.response = &rest.Response{StatusCode: 401, Body: "unauthorized"}
	assert.ErrorContains(t, sink.Deliver(context.Background(), validEnquiry()), "status 401")

	client.err = errors.New("timeout")
	assert.ErrorContains(t, sink.Deliver(context.Background(), validEnquiry()), "timeout")
}

type recordingSink struct {
	got []*Enquiry
	err error
}

func (r *recordingSink) Deliver(ctx context.Context, e *Enquiry) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("down")}
	err := MultiSink{failing, ok}.Deliver(context.Background(), validEnquiry())
	assert.ErrorContains(t, err, "down")
	assert.Len(t, ok.got, 1)
	assert.NoError(t, MultiSink{ok, LogSink{}}.Deliver(context.Background(), validEnquiry()))
}

type fakePublisher struct {
	topic messaging.ChangeTopic
	data  any
}

func (f *fakePublisher) Publish(ctx context.Context, topic messaging.ChangeTopic, data any) error {
	f.topic, f.data = topic, data
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestAmqpSink(t *testing.T) {
	pub := &fakePublisher{}
	e := validEnquiry()
	require.NoError(t, NewAmqpSink(pub).Deliver(context.Background(), e))
	assert.Equal(t, messaging.EnquiryTopic, pub.topic)
	assert.Same(t, e, pub.data)
}

func TestServiceSubmit(t *testing.T) {
	sink := &recordingSink{}
	svc := NewService(sink, LimitConfig{PerMinute: 1, Burst: 2})
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	first, err := svc.Submit(context.Background(), "1.2.3.4", validEnquiry())
	require.NoError(t, err)
	assert.NotEmpty(t, first.Id)
	assert.Equal(t, now, first.CreatedAt)

	_, err = svc.Submit(context.Background(), "1.2.3.4", validEnquiry())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "1.2.3.4", validEnquiry())
	assert.ErrorIs(t, err, ErrRateLimited)

	// other clients have their own budget
	_, err = svc.Submit(context.Background(), "5.6.7.8", validEnquiry())
	assert.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = svc.Submit(context.Background(), "1.2.3.4", validEnquiry())
	assert.NoError(t, err)
	assert.Len(t, sink.got, 4)
}

func TestServiceRejectsInvalidWithoutSpendingBudget(t *testing.T) {
	svc := NewService(&recordingSink{}, LimitConfig{PerMinute: 1, Burst: 1})
	_, err := svc.Submit(context.Background(), "c", &Enquiry{})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	_, err = svc.Submit(context.Background(), "c", validEnquiry())
	assert.NoError(t, err)
}

func TestServiceSurfacesDeliveryFailure(t *testing.T) {
	svc := NewService(&recordingSink{err: errors.New("smtp down")}, LimitConfig{})
	_, err := svc.Submit(context.Background(), "c", validEnquiry())
	assert.ErrorIs(t, err, ErrDelivery)
	assert.ErrorContains(t, err, "smtp down")
}

func TestRelayDelivery(t *testing.T) {
	sink := &recordingSink{}
	body, err := jsoncompat.Marshal(validEnquiry())
	require.NoError(t, err)
	require.NoError(t, relayDelivery(body, sink))
	require.Len(t, sink.got, 1)
	assert.Equal(t, "Polycab Elanza", sink.got[0].ProductName)
	assert.Error(t, relayDelivery([]byte("{"), sink))
}

func TestRelayDeliverySurfacesSinkFailure(t *testing.T) {
	sink := &recordingSink{err: errors.New("sendgrid status 503")}
	body, err := jsoncompat.Marshal(validEnquiry())
	require.NoError(t, err)
	// the error makes the listener requeue and later dead letter the message
	assert.ErrorContains(t, relayDelivery(body, sink), "503")
	assert.Len(t, sink.got, 1)
}

func TestServiceSweepForgetsIdleClients(t *testing.T) {
	svc := NewService(&recordingSink{}, LimitConfig{PerMinute: 1, Burst: 2})
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for _, client := range []string{"1.2.3.4", "1.2.3.4", "5.6.7.8"} {
		_, err := svc.Submit(context.Background(), client, validEnquiry())
		require.NoError(t, err)
	}
	assert.Len(t, svc.limiters, 2)

	// quiet but still paying back the burst
	now = now.Add(30 * time.Second)
	assert.Equal(t, 0, svc.Sweep(10*time.Second))

	// the lighter client refills first
	now = now.Add(40 * time.Second)
	assert.Equal(t, 1, svc.Sweep(10*time.Second))
	assert.Contains(t, svc.limiters, "1.2.3.4")

	now = now.Add(time.Minute)
	assert.Equal(t, 1, svc.Sweep(10*time.Second))
	assert.Empty(t, svc.limiters)

	// a forgotten client starts with a full budget again
	_, err := svc.Submit(context.Background(), "1.2.3.4", validEnquiry())
	assert.NoError(t, err)
}
