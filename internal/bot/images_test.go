package bot

import (
	"context"
	"testing"

	tgmodels "github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"

	"gitlab.com/nepalfinance/claims-bot/internal/bot/mocks"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
)

// advanceToReceiptStep walks a session to the receipt upload step with a
// complete draft.
func advanceToReceiptStep(ctx context.Context, b *Bot, mockBot *mocks.MockBot) {
	sendText(ctx, b, mockBot, optionSubmitClaim)
	sendText(ctx, b, mockBot, "Finance")
	sendText(ctx, b, mockBot, "Jane Doe")
	sendText(ctx, b, mockBot, "Travel")
	sendText(ctx, b, mockBot, "120")
	sendText(ctx, b, mockBot, "Taxi to airport")
}

func TestReceiptUploadRejectsNonJPEG(t *testing.T) {
	t.Parallel()

	b, ledger, receipts := setupTestBot(t)
	mockBot := mocks.NewMockBot()
	ctx := context.Background()

	server := photoServer(t, []byte("png-bytes"))
	mockBot.FileDownloadLinkToReturn = server.URL
	mockBot.FileToReturn = &tgmodels.File{FileID: "photo1", FilePath: "photos/screenshot.png"}

	advanceToReceiptStep(ctx, b, mockBot)
	b.defaultHandlerCore(ctx, mockBot, mocks.PhotoUpdate(testChatID, testUserID, "photo1"))

	require.Equal(t, msgInvalidImage, mockBot.LastSentMessage().Text)
	require.Empty(t, receipts.Uploads)
	require.Empty(t, ledger.Appended)

	// The draft survives so only the upload needs redoing.
	sess := b.sessions.Get(testUserID)
	require.Equal(t, models.StepAwaitingReceiptImage, sess.ActiveStep)
	require.Equal(t, "Finance", sess.Draft[models.FieldDepartment])
}

func TestReceiptDownloadFailure(t *testing.T) {
	t.Parallel()

	b, ledger, _ := setupTestBot(t)
	mockBot := mocks.NewMockBot()
	ctx := context.Background()

	mockBot.GetFileError = errTestRemote

	advanceToReceiptStep(ctx, b, mockBot)
	b.defaultHandlerCore(ctx, mockBot, mocks.PhotoUpdate(testChatID, testUserID, "photo1"))

	require.Equal(t, msgRemoteFailure, mockBot.LastSentMessage().Text)
	require.Empty(t, ledger.Appended)
	require.Equal(t, models.StepAwaitingReceiptImage, b.sessions.Get(testUserID).ActiveStep)
}

func TestReceiptLedgerAppendFailure(t *testing.T) {
	t.Parallel()

	b, ledger, receipts := setupTestBot(t)
	mockBot := mocks.NewMockBot()
	ctx := context.Background()

	server := photoServer(t, []byte("jpeg-bytes"))
	mockBot.FileDownloadLinkToReturn = server.URL
	ledger.AppendErr = errTestRemote

	advanceToReceiptStep(ctx, b, mockBot)
	b.defaultHandlerCore(ctx, mockBot, mocks.PhotoUpdate(testChatID, testUserID, "photo1"))

	require.Equal(t, msgRemoteFailure, mockBot.LastSentMessage().Text)

	// The image upload already happened but the session is not reset, so
	// resending the photo retries the append.
	require.Len(t, receipts.Uploads, 1)
	require.Equal(t, models.StepAwaitingReceiptImage, b.sessions.Get(testUserID).ActiveStep)
}

func TestPhotoOutsideImageStepIsIgnored(t *testing.T) {
	t.Parallel()

	b, ledger, receipts := setupTestBot(t)
	mockBot := mocks.NewMockBot()

	b.defaultHandlerCore(context.Background(), mockBot, mocks.PhotoUpdate(testChatID, testUserID, "photo1"))

	require.Zero(t, mockBot.SentMessageCount())
	require.Empty(t, ledger.Appended)
	require.Empty(t, receipts.Uploads)
	require.Equal(t, models.StepIdle, b.sessions.Get(testUserID).ActiveStep)
}

func TestDocumentUploads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		mimeType string
		want     string
	}{
		{name: "pdf", fileName: "receipt.pdf", mimeType: "application/pdf", want: msgNonImageFile},
		{name: "zip", fileName: "receipts.zip", mimeType: "application/zip", want: msgNonImageFile},
		{name: "csv", fileName: "expenses.csv", mimeType: "text/csv", want: msgNonImageFile},
		{name: "unknown type", fileName: "receipt.heic", mimeType: "image/heic", want: msgUnsupportedFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, ledger, _ := setupTestBot(t)
			mockBot := mocks.NewMockBot()

			b.sessions.Advance(testUserID, models.StepAwaitingReceiptImage, nil)
			update := mocks.DocumentUpdate(testChatID, testUserID, "doc1", tt.fileName, tt.mimeType)
			b.defaultHandlerCore(context.Background(), mockBot, update)

			require.Equal(t, tt.want, mockBot.LastSentMessage().Text)
			require.Empty(t, ledger.Appended)
			require.Equal(t, models.StepAwaitingReceiptImage, b.sessions.Get(testUserID).ActiveStep)
		})
	}
}
