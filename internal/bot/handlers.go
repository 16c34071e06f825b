package bot

import (
	"context"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"gitlab.com/nepalfinance/claims-bot/internal/logger"
)

// handleStart handles the /start command.
func (b *Bot) handleStart(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleStartCore(ctx, tgBot, update)
}

// handleStartCore is the testable implementation of handleStart.
func (b *Bot) handleStartCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}

	b.replyMarkdown(ctx, tg, update.Message.Chat.ID, msgWelcome, mainMenuKeyboard())
}

// handleEnd handles the /end command: an unconditional reset from any
// state, independent of whichever step is in progress.
func (b *Bot) handleEnd(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleEndCore(ctx, tgBot, update)
}

// handleEndCore is the testable implementation of handleEnd.
func (b *Bot) handleEndCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	b.sessions.Reset(update.Message.From.ID)
	b.reply(ctx, tg, update.Message.Chat.ID, msgGoodbye, mainMenuKeyboard())
}

// handleUnknownCommandCore replies to unrecognized slash commands.
func (b *Bot) handleUnknownCommandCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	b.reply(ctx, tg, update.Message.Chat.ID, msgUnknownCommand, nil)
}

// reply sends a plain-text message, logging send failures.
func (b *Bot) reply(ctx context.Context, tg TelegramAPI, chatID int64, text string, markup tgmodels.ReplyMarkup) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// replyMarkdown sends a Markdown-formatted message.
func (b *Bot) replyMarkdown(ctx context.Context, tg TelegramAPI, chatID int64, text string, markup tgmodels.ReplyMarkup) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   tgmodels.ParseModeMarkdown,
		ReplyMarkup: markup,
	})
	if err != nil {
		logger.Log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
