// Package payments handles inbound e-Transfer notifications: parsing the
// webhook payload, recording the intake, and matching it against pending
// invoices. Anything ambiguous lands in needs_review for manual resolution.
package payments

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
)

var (
	ErrPayment apperrors.Error = apperrors.New("payment error").SetStatusCode(http.StatusInternalServerError)

	ErrInvalidPayload = ErrPayment.New("invalid payment notification payload").SetStatusCode(http.StatusBadRequest)
	ErrIntakeResolved = ErrPayment.New("payment intake already resolved").SetStatusCode(http.StatusConflict)
	ErrInvoiceSettled = ErrPayment.New("invoice is not pending").SetStatusCode(http.StatusConflict)
)

// IntakePayload is the normalized form of an e-Transfer notification.
type IntakePayload struct {
	Reference   string
	SenderName  string
	SenderEmail string
	Amount      decimal.Decimal
	ReceivedAt  time.Time
	Raw         []byte
}

// ParseIntakePayload extracts the fields the matcher needs from the bank's
// notification JSON. Amount may arrive as a string or a number; received_at
// is RFC 3339 and defaults to now when absent.
func ParseIntakePayload(payload []byte) (*IntakePayload, apperrors.Error) {
	if !gjson.ValidBytes(payload) {
		return nil, ErrInvalidPayload
	}
	doc := gjson.ParseBytes(payload)

	reference := doc.Get("reference").String()
	if reference == "" {
		return nil, ErrInvalidPayload.Msg("missing reference")
	}

	amountField := doc.Get("amount")
	if !amountField.Exists() {
		return nil, ErrInvalidPayload.Msg("missing amount")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(amountField.String()))
	if err != nil {
		return nil, ErrInvalidPayload.Msg("invalid amount")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, ErrInvalidPayload.Msg("invalid amount")
	}

	receivedAt := time.Now()
	if ts := doc.Get("received_at").String(); ts != "" {
		parsed, perr := time.Parse(time.RFC3339, ts)
		if perr != nil {
			return nil, ErrInvalidPayload.Msg("invalid received_at timestamp")
		}
		receivedAt = parsed
	}

	return &IntakePayload{
		Reference:   reference,
		SenderName:  doc.Get("sender.name").String(),
		SenderEmail: strings.ToLower(strings.TrimSpace(doc.Get("sender.email").String())),
		Amount:      amount,
		ReceivedAt:  receivedAt,
		Raw:         payload,
	}, nil
}
