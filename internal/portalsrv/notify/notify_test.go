package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureSender struct {
	to      string
	subject string
	body    string
	err     error
}

func (c *captureSender) Send(ctx context.Context, to, subject, body string) error {
	c.to = to
	c.subject = subject
	c.body = body
	return c.err
}

func TestSendUsesConfiguredSender(t *testing.T) {
	capture := &captureSender{}
	SetSender(capture)
	defer SetSender(&logSender{})

	Send(context.Background(), "tenant@example.com", "Rent invoice INV-ABC123", "Your invoice is due.")

	assert.Equal(t, "tenant@example.com", capture.to)
	assert.Equal(t, "Rent invoice INV-ABC123", capture.subject)
	assert.Equal(t, "Your invoice is due.", capture.body)
}

func TestSendSwallowsDeliveryErrors(t *testing.T) {
	capture := &captureSender{err: errors.New("relay unreachable")}
	SetSender(capture)
	defer SetSender(&logSender{})

	// must not panic or propagate
	Send(context.Background(), "tenant@example.com", "subject", "body")
	assert.Equal(t, "tenant@example.com", capture.to)
}

func TestLogSenderNeverFails(t *testing.T) {
	s := &logSender{}
	assert.NoError(t, s.Send(context.Background(), "tenant@example.com", "subject", "body"))
}
