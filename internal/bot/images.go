package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"gitlab.com/nepalfinance/claims-bot/internal/logger"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
)

// maxImageBytes caps how much of a photo the bot will buffer. Telegram
// photos are re-encoded server-side and stay well under this.
const maxImageBytes = 20 << 20

// recognizedNonImageTypes are document MIME types users commonly attach
// by mistake; they get a gentler reply than completely unknown types.
var recognizedNonImageTypes = []string{
	"application/pdf",
	"application/zip",
	"text/csv",
	"application/x-ipynb+json",
}

// handlePhotoCore routes an inbound photo to whichever image step is
// active. A photo arriving outside an image step is ignored.
func (b *Bot) handlePhotoCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	userID := update.Message.From.ID

	switch b.sessions.Get(userID).ActiveStep {
	case models.StepAwaitingReceiptImage:
		b.submitClaimReceipt(ctx, tg, update)
	case models.StepAwaitingPaymentProofImage:
		b.submitPaymentProof(ctx, tg, update)
	default:
		logger.Log.Debug().
			Str("user_hash", logger.HashUserID(userID)).
			Msg("Photo received outside an image step; ignoring")
	}
}

// handleDocumentCore replies to non-photo file uploads. Documents are
// never accepted as receipts, whatever the active step.
func (b *Bot) handleDocumentCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	chatID := update.Message.Chat.ID

	if slices.Contains(recognizedNonImageTypes, update.Message.Document.MimeType) {
		b.reply(ctx, tg, chatID, msgNonImageFile, nil)
		return
	}
	b.reply(ctx, tg, chatID, msgUnsupportedFile, nil)
}

// downloadPhoto fetches the bytes of the largest variant of the photo
// in update, returning them with the Telegram file path. The file path
// carries the extension the blob store validates against.
func (b *Bot) downloadPhoto(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) ([]byte, string, error) {
	photos := update.Message.Photo
	largest := photos[len(photos)-1]

	file, err := tg.GetFile(ctx, &bot.GetFileParams{FileID: largest.FileID})
	if err != nil {
		return nil, "", fmt.Errorf("get file info: %w", err)
	}

	url := tg.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download photo: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read photo body: %w", err)
	}

	logger.Log.Debug().
		Str("file_id", largest.FileID).
		Int("size_bytes", len(data)).
		Msg("Photo downloaded")

	return data, file.FilePath, nil
}
