// Package bot provides the Telegram bot initialization and handlers.
package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/nepalfinance/claims-bot/internal/config"
	"gitlab.com/nepalfinance/claims-bot/internal/drive"
	"gitlab.com/nepalfinance/claims-bot/internal/logger"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
	"gitlab.com/nepalfinance/claims-bot/internal/session"
)

// Ledger is the remote claims ledger the bot appends to and reads from.
type Ledger interface {
	Append(ctx context.Context, sub models.Submission) error
	LookupStatus(ctx context.Context, claimID string) (string, error)
}

// ReceiptStore is the remote blob store holding uploaded images.
type ReceiptStore interface {
	Upload(ctx context.Context, folder drive.Folder, id string, data []byte, sourcePath string) error
}

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot        *bot.Bot
	cfg        *config.Config
	sessions   *session.Store
	ledger     Ledger
	receipts   ReceiptStore
	httpClient *http.Client
	now        func() time.Time
}

// New creates a new Bot instance.
func New(cfg *config.Config, ledger Ledger, receipts ReceiptStore) (*Bot, error) {
	b := &Bot{
		cfg:      cfg,
		sessions: session.NewStore(),
		ledger:   ledger,
		receipts: receipts,
		httpClient: &http.Client{
			Timeout:   cfg.RemoteTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}

	opts := []bot.Option{
		bot.WithMiddlewares(b.loggingMiddleware),
		bot.WithDefaultHandler(b.defaultHandler),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.registerHandlers()

	return b, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// registerHandlers sets up command handlers.
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/end", bot.MatchTypePrefix, b.handleEnd)
}

// loggingMiddleware records every inbound event before processing.
// User-provided text is sanitized; only hashes and shapes are logged.
func (b *Bot) loggingMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		userID := extractUserID(update)
		if userID == 0 {
			return
		}

		logUserAction(userID, update)
		next(ctx, tgBot, update)
	}
}

// logUserAction logs the user's input/action.
func logUserAction(userID int64, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message
	event := logger.Log.Info().
		Str("user_hash", logger.HashUserID(userID)).
		Int64("chat_id", msg.Chat.ID)

	if msg.Text != "" {
		event = event.Str("text", logger.SanitizeText(msg.Text))
	}
	if len(msg.Photo) > 0 {
		event = event.Str("type", "photo")
	}
	if msg.Document != nil {
		event = event.Str("type", "document").Str("filename", msg.Document.FileName)
	}

	event.Msg("User input")
}

// extractUserID gets the user ID from the update.
func extractUserID(update *tgmodels.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	return 0
}

// defaultHandler receives everything the command handlers do not:
// free text, photos, documents and unrecognized slash commands.
func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.defaultHandlerCore(ctx, tgBot, update)
}

// defaultHandlerCore is the testable implementation of defaultHandler.
func (b *Bot) defaultHandlerCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	switch {
	case len(update.Message.Photo) > 0:
		b.handlePhotoCore(ctx, tg, update)
	case update.Message.Document != nil:
		b.handleDocumentCore(ctx, tg, update)
	case isCommand(update.Message.Text):
		b.handleUnknownCommandCore(ctx, tg, update)
	default:
		b.handleTextCore(ctx, tg, update)
	}
}

// isCommand reports whether text looks like a slash command.
func isCommand(text string) bool {
	return len(text) > 0 && text[0] == '/'
}
