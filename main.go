// Package main is the entry point for the finance claims Telegram bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/nepalfinance/claims-bot/internal/bot"
	"gitlab.com/nepalfinance/claims-bot/internal/config"
	"gitlab.com/nepalfinance/claims-bot/internal/drive"
	"gitlab.com/nepalfinance/claims-bot/internal/gcp"
	"gitlab.com/nepalfinance/claims-bot/internal/logger"
	"gitlab.com/nepalfinance/claims-bot/internal/sheets"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("claims-bot %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	clients, err := gcp.NewClients(ctx, cfg.GoogleCredentialsFile)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create Google API clients")
	}

	ledger := sheets.NewLedger(clients.Sheets, cfg.SpreadsheetID, cfg.SheetRange, cfg.RemoteTimeout)
	receipts := drive.NewReceipts(clients.Drive, cfg.ClaimReceiptFolderID, cfg.PaymentProofFolderID, cfg.RemoteTimeout)

	logger.Log.Info().Msg("Remote ledger and receipt store initialized")

	claimsBot, err := bot.New(cfg, ledger, receipts)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create bot")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	claimsBot.Start(ctx)
}
