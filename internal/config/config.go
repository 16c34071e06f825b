// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gitlab.com/nepalfinance/claims-bot/internal/models"
)

// DefaultSheetRange covers the nine ledger columns, header included.
const DefaultSheetRange = "Sheet1!A:I"

// DefaultRemoteTimeout bounds every Sheets/Drive round trip.
const DefaultRemoteTimeout = 30 * time.Second

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken      string
	GoogleCredentialsFile string
	SpreadsheetID         string
	SheetRange            string
	ClaimReceiptFolderID  string
	PaymentProofFolderID  string
	Departments           []string
	LogLevel              string
	RemoteTimeout         time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken:      strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		SheetRange:            os.Getenv("SHEET_RANGE"),
		ClaimReceiptFolderID:  os.Getenv("CLAIM_RECEIPT_FOLDER_ID"),
		PaymentProofFolderID:  os.Getenv("PAYMENT_PROOF_FOLDER_ID"),
		LogLevel:              os.Getenv("LOG_LEVEL"),
	}

	if cfg.SheetRange == "" {
		cfg.SheetRange = DefaultSheetRange
	}

	cfg.RemoteTimeout = DefaultRemoteTimeout
	if secStr := os.Getenv("REMOTE_TIMEOUT_SECONDS"); secStr != "" {
		if sec, err := strconv.Atoi(secStr); err == nil && sec > 0 {
			cfg.RemoteTimeout = time.Duration(sec) * time.Second
		}
	}

	if deptStr := os.Getenv("DEPARTMENTS"); deptStr != "" {
		for dept := range strings.SplitSeq(deptStr, ",") {
			dept = strings.TrimSpace(dept)
			if dept == "" {
				continue
			}
			cfg.Departments = append(cfg.Departments, dept)
		}
	}
	if len(cfg.Departments) == 0 {
		cfg.Departments = slices.Clone(models.DefaultDepartments)
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.GoogleCredentialsFile == "" {
		errs = append(errs, "GOOGLE_CREDENTIALS_FILE is required")
	}

	if c.SpreadsheetID == "" {
		errs = append(errs, "SPREADSHEET_ID is required")
	}

	if c.ClaimReceiptFolderID == "" {
		errs = append(errs, "CLAIM_RECEIPT_FOLDER_ID is required")
	}

	if c.PaymentProofFolderID == "" {
		errs = append(errs, "PAYMENT_PROOF_FOLDER_ID is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsKnownDepartment checks if raw is one of the configured departments.
// The match is case-sensitive: the ledger stores the department exactly
// as it appears on the selection keyboard.
func (c *Config) IsKnownDepartment(raw string) bool {
	return slices.Contains(c.Departments, raw)
}
