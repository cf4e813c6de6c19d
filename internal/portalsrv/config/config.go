package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type ConfigParam struct {
	ServerPort        string `toml:"server_port"`
	HandleCORS        bool   `toml:"handle_cors"`
	CORSAllowedOrigin string `toml:"cors_allowed_origin"`

	SingleOrgMode bool   `toml:"single_org_mode"`
	DefaultOrgID  string `toml:"default_org_id"`

	SessionValidity   string `toml:"session_validity"`
	SessionSigningKey string `toml:"session_signing_key"`

	// JobKey protects the webhook and cron-trigger endpoints via the
	// X-CasaHub-Job-Key header.
	JobKey string `toml:"job_key"`

	// InvoiceCron is a standard 5-field cron spec; empty disables the
	// in-process scheduler.
	InvoiceCron     string `toml:"invoice_cron"`
	InvoiceLeadDays int    `toml:"invoice_lead_days"`

	EmailFrom string `toml:"email_from"`
	SMTPAddr  string `toml:"smtp_addr"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = &ConfigParam{
			ServerPort:        "8210",
			HandleCORS:        true,
			CORSAllowedOrigin: "http://localhost:5173",
			SingleOrgMode:     true,
			DefaultOrgID:      "ORGDEFLT",
			SessionValidity:   "1d",
			SessionSigningKey: "casahub-dev-signing-key-do-not-use-in-prod",
			JobKey:            "casahub-dev-job-key",
			InvoiceCron:       "0 6 * * *",
			InvoiceLeadDays:   10,
			EmailFrom:         "noreply@casahub.local",
		}
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	var cp ConfigParam
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	if cp.InvoiceLeadDays <= 0 {
		cp.InvoiceLeadDays = 10
	}
	if cp.SessionValidity == "" {
		cp.SessionValidity = "1d"
	}
	cfg = &cp
	return nil
}

// ParseTokenDuration parses durations of the form "30m", "12h", "7d", "1y".
func ParseTokenDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("invalid input format")
	}

	unit := input[len(input)-1:]
	valueStr := input[:len(input)-1]
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", err)
	}

	var duration time.Duration
	switch unit {
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "h":
		duration = time.Duration(value) * time.Hour
	case "m":
		duration = time.Duration(value) * time.Minute
	case "y":
		// Assuming 1 year = 365 days for simplicity
		duration = time.Duration(value) * 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown time unit: %s", unit)
	}

	return duration, nil
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}
