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

// startClaimSubmission begins the claim form with department selection.
func (b *Bot) startClaimSubmission(ctx context.Context, tg TelegramAPI, chatID, userID int64) {
	b.reply(ctx, tg, chatID, msgChooseDepartment, b.departmentKeyboard())
	b.sessions.Advance(userID, models.StepAwaitingDepartment, nil)
}

// handleDepartmentInput validates the department answer. An unknown
// department re-shows the keyboard without advancing.
func (b *Bot) handleDepartmentInput(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	if !b.cfg.IsKnownDepartment(text) {
		b.reply(ctx, tg, chatID, msgChooseDepartment, b.departmentKeyboard())
		return
	}

	b.sessions.Advance(userID, models.StepAwaitingName, map[models.Field]string{
		models.FieldDepartment: text,
	})
	b.reply(ctx, tg, chatID, "Department Selected: "+text, removeKeyboard())
	b.reply(ctx, tg, chatID, msgEnterName, removeKeyboard())
}

// handleNameInput records the requester's name.
func (b *Bot) handleNameInput(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	b.sessions.Advance(userID, models.StepAwaitingCategory, map[models.Field]string{
		models.FieldName: text,
	})
	b.reply(ctx, tg, chatID, msgEnterCategory, removeKeyboard())
}

// handleCategoryInput records what is being claimed for.
func (b *Bot) handleCategoryInput(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	b.sessions.Advance(userID, models.StepAwaitingAmount, map[models.Field]string{
		models.FieldCategory: text,
	})
	b.reply(ctx, tg, chatID, msgEnterAmount, removeKeyboard())
}

// handleAmountInput normalizes the claimed amount. An amount that fails
// to normalize re-prompts rather than being stored empty.
func (b *Bot) handleAmountInput(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	amount := validate.NormalizeAmount(text)
	if amount == "" {
		b.reply(ctx, tg, chatID, msgInvalidAmount, nil)
		return
	}

	b.sessions.Advance(userID, models.StepAwaitingDescription, map[models.Field]string{
		models.FieldAmount: amount,
	})
	b.reply(ctx, tg, chatID, "Amount to claim: "+amount, removeKeyboard())
	b.reply(ctx, tg, chatID, msgEnterDescription, removeKeyboard())
}

// handleDescriptionInput records the claim description and asks for
// the receipt image.
func (b *Bot) handleDescriptionInput(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	b.sessions.Advance(userID, models.StepAwaitingReceiptImage, map[models.Field]string{
		models.FieldDescription: text,
	})
	b.reply(ctx, tg, chatID, msgUploadReceipt, removeKeyboard())
}

// submitClaimReceipt finishes the claim: uploads the receipt image,
// appends the submission row, and confirms with the claim ID. Every
// failure leaves the session at the image step so the user can retry
// the upload; the submission is never silently dropped.
func (b *Bot) submitClaimReceipt(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	data, sourcePath, err := b.downloadPhoto(ctx, tg, update)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(userID)).
			Msg("Failed to download receipt photo")
		b.reply(ctx, tg, chatID, msgRemoteFailure, nil)
		return
	}

	receiptID := validate.NewSubmissionID()

	if err := b.receipts.Upload(ctx, drive.ClaimReceipts, receiptID, data, sourcePath); err != nil {
		if errors.Is(err, drive.ErrInvalidMimeType) {
			b.reply(ctx, tg, chatID, msgInvalidImage, nil)
			return
		}
		logger.Log.Error().Err(err).
			Str("user_hash", logger.HashUserID(userID)).
			Msg("Failed to upload receipt image")
		b.reply(ctx, tg, chatID, msgRemoteFailure, nil)
		return
	}

	draft := b.sessions.Get(userID).Draft
	sub := models.Submission{
		ReceiptID:   receiptID,
		Department:  draft[models.FieldDepartment],
		Name:        draft[models.FieldName],
		Date:        b.now().Format("2006-01-02"),
		Category:    draft[models.FieldCategory],
		Amount:      draft[models.FieldAmount],
		Description: draft[models.FieldDescription],
		Status:      models.StatusPending,
		Flag:        models.SubmissionFlag,
	}

	if err := b.ledger.Append(ctx, sub); err != nil {
		logger.Log.Error().Err(err).
			Str("receipt_id", receiptID).
			Msg("Failed to append submission to ledger")
		b.reply(ctx, tg, chatID, msgRemoteFailure, nil)
		return
	}

	b.sessions.Reset(userID)
	b.reply(ctx, tg, chatID, msgImageReceived, nil)
	b.replyMarkdown(ctx, tg, chatID, claimSummary(
		sub.Department,
		sub.Name,
		sub.Category,
		sub.Amount,
		sub.Description,
		sub.ReceiptID,
	), mainMenuKeyboard())
}
