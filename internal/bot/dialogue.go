package bot

import (
	"context"
	"strings"

	tgmodels "github.com/go-telegram/bot/models"

	"gitlab.com/nepalfinance/claims-bot/internal/logger"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
)

// handleTextCore routes a free-text message to the handler for the
// user's active step. The step switch runs before any menu matching,
// so a user typing "Submit a Claim" as their name gets it recorded as
// a name, not treated as a menu command. Menu options only match from
// the idle state.
func (b *Bot) handleTextCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	sess := b.sessions.Get(userID)

	logger.Log.Debug().
		Str("user_hash", logger.HashUserID(userID)).
		Stringer("step", sess.ActiveStep).
		Msg("Routing text message")

	if sess.ActiveStep.AwaitingImage() {
		// Waiting for an image but got text; re-prompt without advancing.
		b.reply(ctx, tg, chatID, msgRequestValidImage, nil)
		return
	}

	switch sess.ActiveStep {
	case models.StepAwaitingClaimIDLookup:
		b.handleClaimStatusCheck(ctx, tg, chatID, userID, text)

	case models.StepAwaitingDepartment:
		b.handleDepartmentInput(ctx, tg, chatID, userID, text)

	case models.StepAwaitingName:
		b.handleNameInput(ctx, tg, chatID, userID, text)

	case models.StepAwaitingCategory:
		b.handleCategoryInput(ctx, tg, chatID, userID, text)

	case models.StepAwaitingAmount:
		b.handleAmountInput(ctx, tg, chatID, userID, text)

	case models.StepAwaitingDescription:
		b.handleDescriptionInput(ctx, tg, chatID, userID, text)

	case models.StepAwaitingPaymentProofName:
		b.handlePaymentProofNameInput(ctx, tg, chatID, userID, text)

	default:
		b.handleMenuOption(ctx, tg, chatID, userID, text)
	}
}

// handleMenuOption dispatches a main-menu selection from the idle state.
func (b *Bot) handleMenuOption(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	switch text {
	case optionSubmitClaim:
		b.startClaimSubmission(ctx, tg, chatID, userID)
	case optionCheckStatus:
		b.startClaimStatusCheck(ctx, tg, chatID, userID)
	case optionSubmitPayment:
		b.startPaymentProofSubmission(ctx, tg, chatID, userID)
	default:
		b.reply(ctx, tg, chatID, msgInvalidOption, nil)
	}
}
