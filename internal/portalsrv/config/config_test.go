package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTokenDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"30m", 30 * time.Minute, false},
		{"12h", 12 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"1y", 365 * 24 * time.Hour, false},
		{"", 0, true},
		{"d", 0, true},
		{"10w", 0, true},
		{"xxh", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTokenDuration(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		assert.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}

func TestDefaultConfig(t *testing.T) {
	assert.NoError(t, LoadConfig(""))
	assert.NotEmpty(t, Config().ServerPort)
	assert.True(t, Config().SingleOrgMode)
	assert.Greater(t, Config().InvoiceLeadDays, 0)
}
