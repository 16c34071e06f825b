package bot

import (
	"context"
	"errors"

	tgmodels "github.com/go-telegram/bot/models"

	"gitlab.com/nepalfinance/claims-bot/internal/drive"
	"gitlab.com/nepalfinance/claims-bot/internal/logger"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
	"gitlab.com/nepalfinance/claims-bot/internal/validate"
)

// startPaymentProofSubmission begins the proof-of-payment flow by
// asking for the submitter's name.
func (b *Bot) startPaymentProofSubmission(ctx context.Context, tg TelegramAPI, chatID, userID int64) {
	b.reply(ctx, tg, chatID, msgEnterProofName, removeKeyboard())
	b.sessions.Advance(userID, models.StepAwaitingPaymentProofName, nil)
}

// handlePaymentProofNameInput records the name and asks for the image.
func (b *Bot) handlePaymentProofNameInput(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	b.sessions.Advance(userID, models.StepAwaitingPaymentProofImage, map[models.Field]string{
		models.FieldName: text,
	})
	b.reply(ctx, tg, chatID, msgUploadProofImage, removeKeyboard())
}

// submitPaymentProof uploads the proof image and confirms with the
// submission ID. No ledger row is appended for payment proofs. Failures
// leave the session at the image step for a retry.
func (b *Bot) submitPaymentProof(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	data, sourcePath, err := b.downloadPhoto(ctx, tg, update)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(userID)).
			Msg("Failed to download payment proof photo")
		b.reply(ctx, tg, chatID, msgRemoteFailure, nil)
		return
	}

	// The image is filed under <name>_<id> so the finance team can
	// see at a glance who submitted it.
	name := b.sessions.Get(userID).Draft[models.FieldName]
	receiptID := name + "_" + validate.NewSubmissionID()

	if err := b.receipts.Upload(ctx, drive.PaymentProofs, receiptID, data, sourcePath); err != nil {
		if errors.Is(err, drive.ErrInvalidMimeType) {
			b.reply(ctx, tg, chatID, msgInvalidImage, nil)
			return
		}
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(userID)).
			Msg("Failed to upload payment proof image")
		b.reply(ctx, tg, chatID, msgRemoteFailure, nil)
		return
	}

	b.sessions.Reset(userID)
	b.reply(ctx, tg, chatID, msgImageSubmitted, nil)
	b.replyMarkdown(ctx, tg, chatID, paymentProofSummary(name, receiptID), mainMenuKeyboard())
}
