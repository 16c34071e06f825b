package bot

import (
	"context"
	"errors"
	"strings"

	"gitlab.com/nepalfinance/claims-bot/internal/logger"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
	"gitlab.com/nepalfinance/claims-bot/internal/sheets"
)

// startClaimStatusCheck asks for the claim ID to look up.
func (b *Bot) startClaimStatusCheck(ctx context.Context, tg TelegramAPI, chatID, userID int64) {
	b.reply(ctx, tg, chatID, msgEnterClaimID, removeKeyboard())
	b.sessions.Advance(userID, models.StepAwaitingClaimIDLookup, nil)
}

// handleClaimStatusCheck resolves a claim ID against the ledger.
// Lookups are terminal: found or not, the session returns to idle. A
// remote failure keeps the lookup step active so the user can resend
// the ID.
func (b *Bot) handleClaimStatusCheck(ctx context.Context, tg TelegramAPI, chatID, userID int64, text string) {
	claimID := strings.TrimSpace(text)

	status, err := b.ledger.LookupStatus(ctx, claimID)
	switch {
	case errors.Is(err, sheets.ErrClaimNotFound):
		b.sessions.Reset(userID)
		b.reply(ctx, tg, chatID, statusNotFound(claimID), nil)
		return

	case err != nil:
		logger.Log.Error().Err(err).
			Str("claim_id", logger.SanitizeClaimID(claimID)).
			Msg("Claim status lookup failed")
		b.reply(ctx, tg, chatID, msgRemoteFailure, nil)
		return
	}

	b.sessions.Reset(userID)

	switch strings.ToLower(status) {
	case models.StatusApproved, models.StatusRejected:
		b.replyMarkdown(ctx, tg, chatID, statusDecided(claimID, strings.ToLower(status)), mainMenuKeyboard())
	default:
		b.replyMarkdown(ctx, tg, chatID, statusProcessing(claimID), mainMenuKeyboard())
	}
}
