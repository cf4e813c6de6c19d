// Package notify sends transactional portal email. Sends are best effort:
// every attempt is recorded in the email_notifications table and failures
// are logged, never retried.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
)

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

var (
	sender   Sender
	senderMu sync.Mutex
)

func getSender() Sender {
	senderMu.Lock()
	defer senderMu.Unlock()
	if sender == nil {
		if addr := config.Config().SMTPAddr; addr != "" {
			sender = &smtpSender{addr: addr, from: config.Config().EmailFrom}
		} else {
			sender = &logSender{}
		}
	}
	return sender
}

// SetSender overrides the configured sender. Intended for tests.
func SetSender(s Sender) {
	senderMu.Lock()
	defer senderMu.Unlock()
	sender = s
}

// smtpSender delivers via a plain SMTP relay. No mail library in use; the
// portal only sends short plain-text notices.
type smtpSender struct {
	addr string
	from string
}

func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// logSender is the fallback when no SMTP relay is configured.
type logSender struct{}

func (s *logSender) Send(ctx context.Context, to, subject, body string) error {
	log.Ctx(ctx).Info().Str("to", to).Str("subject", subject).Msg("email delivery skipped: no smtp relay configured")
	return nil
}

// Send delivers a message and records the attempt. Errors are swallowed
// after logging; callers must never depend on delivery.
func Send(ctx context.Context, to, subject, body string) {
	status := models.NotificationStatusSent
	sendError := ""
	if err := getSender().Send(ctx, to, subject, body); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("to", to).Msg("email send failed")
		status = models.NotificationStatusFailed
		sendError = err.Error()
	}

	record := &models.EmailNotification{
		Recipient: to,
		Subject:   subject,
		Body:      body,
		Status:    status,
		SendError: sendError,
	}
	if dbc := db.DB(ctx); dbc != nil {
		if err := dbc.CreateEmailNotification(ctx, record); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("unable to record email notification")
		}
	}
}
