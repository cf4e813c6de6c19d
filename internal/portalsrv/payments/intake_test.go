package payments

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntakePayload(t *testing.T) {
	payload := []byte(`{
		"reference": "ETRF-20260825-001",
		"sender": {"name": "Jordan Lee", "email": "Jordan.Lee@Example.com"},
		"amount": "1850.00",
		"received_at": "2026-08-25T09:30:00Z"
	}`)

	got, err := ParseIntakePayload(payload)
	require.Nil(t, err)
	assert.Equal(t, "ETRF-20260825-001", got.Reference)
	assert.Equal(t, "Jordan Lee", got.SenderName)
	assert.Equal(t, "jordan.lee@example.com", got.SenderEmail)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("1850.00")))
	assert.Equal(t, time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC), got.ReceivedAt.UTC())
}

func TestParseIntakePayloadNumericAmount(t *testing.T) {
	payload := []byte(`{"reference": "ETRF-002", "amount": 1850.5}`)

	got, err := ParseIntakePayload(payload)
	require.Nil(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("1850.5")))
	// received_at defaults to now
	assert.WithinDuration(t, time.Now(), got.ReceivedAt, time.Minute)
}

func TestParseIntakePayloadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{{`},
		{"missing reference", `{"amount": "100.00"}`},
		{"missing amount", `{"reference": "ETRF-003"}`},
		{"zero amount", `{"reference": "ETRF-003", "amount": "0"}`},
		{"negative amount", `{"reference": "ETRF-003", "amount": "-25.00"}`},
		{"garbage amount", `{"reference": "ETRF-003", "amount": "lots"}`},
		{"bad timestamp", `{"reference": "ETRF-003", "amount": "100.00", "received_at": "yesterday"}`},
	}
	for _, test := range tests {
		_, err := ParseIntakePayload([]byte(test.payload))
		assert.NotNil(t, err, test.name)
	}
}
