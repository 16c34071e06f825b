package bot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"gitlab.com/nepalfinance/claims-bot/internal/config"
	"gitlab.com/nepalfinance/claims-bot/internal/drive"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
	"gitlab.com/nepalfinance/claims-bot/internal/session"
	"gitlab.com/nepalfinance/claims-bot/internal/sheets"
)

// testNow is the frozen clock used by test bots.
var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

// errTestRemote stands in for any transient upstream failure.
var errTestRemote = errors.New("upstream unavailable")

// fakeLedger records appends and serves lookups from a fixed status map.
type fakeLedger struct {
	mu        sync.Mutex
	Appended  []models.Submission
	AppendErr error
	Statuses  map[string]string
	LookupErr error
}

func (f *fakeLedger) Append(_ context.Context, sub models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.AppendErr != nil {
		return f.AppendErr
	}
	f.Appended = append(f.Appended, sub)
	return nil
}

func (f *fakeLedger) LookupStatus(_ context.Context, claimID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.LookupErr != nil {
		return "", f.LookupErr
	}
	status, ok := f.Statuses[claimID]
	if !ok {
		return "", sheets.ErrClaimNotFound
	}
	return status, nil
}

// recordedUpload captures one fakeReceipts.Upload call.
type recordedUpload struct {
	Folder     drive.Folder
	ID         string
	Size       int
	SourcePath string
}

// fakeReceipts applies the real JPEG extension check so MIME-rejection
// paths behave exactly like the Drive adapter.
type fakeReceipts struct {
	mu        sync.Mutex
	Uploads   []recordedUpload
	UploadErr error
}

func (f *fakeReceipts) Upload(_ context.Context, folder drive.Folder, id string, data []byte, sourcePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !drive.IsJPEGPath(sourcePath) {
		return drive.ErrInvalidMimeType
	}
	if f.UploadErr != nil {
		return f.UploadErr
	}
	f.Uploads = append(f.Uploads, recordedUpload{
		Folder:     folder,
		ID:         id,
		Size:       len(data),
		SourcePath: sourcePath,
	})
	return nil
}

// setupTestBot creates a Bot wired to fakes, without a real Telegram
// connection.
func setupTestBot(t *testing.T) (*Bot, *fakeLedger, *fakeReceipts) {
	t.Helper()

	cfg := &config.Config{
		TelegramBotToken: "test-token",
		SpreadsheetID:    "sheet-test",
		SheetRange:       config.DefaultSheetRange,
		Departments:      slices.Clone(models.DefaultDepartments),
		RemoteTimeout:    5 * time.Second,
	}

	ledger := &fakeLedger{Statuses: make(map[string]string)}
	receipts := &fakeReceipts{}

	b := &Bot{
		cfg:        cfg,
		sessions:   session.NewStore(),
		ledger:     ledger,
		receipts:   receipts,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		now:        func() time.Time { return testNow },
	}

	return b, ledger, receipts
}

// photoServer serves fake image bytes for downloadPhoto to fetch.
func photoServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}
