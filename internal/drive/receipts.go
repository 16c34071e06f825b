// Package drive is the remote blob-store adapter over the Google Drive API.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"gitlab.com/nepalfinance/claims-bot/internal/logger"
)

// ErrInvalidMimeType is returned when the source image is not a JPEG.
// The finance team's review tooling only handles JPG receipts.
var ErrInvalidMimeType = errors.New("file type is not JPG")

// Folder selects which of the two configured Drive folders an image
// lands in.
type Folder int

const (
	// ClaimReceipts holds receipt images attached to expense claims.
	ClaimReceipts Folder = iota
	// PaymentProofs holds standalone proof-of-payment images.
	PaymentProofs
)

const jpegMimeType = "image/jpeg"

// Receipts uploads receipt images into the configured Drive folders.
type Receipts struct {
	svc           *driveapi.Service
	claimFolderID string
	proofFolderID string
	timeout       time.Duration
}

// NewReceipts creates a Receipts store over the given Drive service.
func NewReceipts(svc *driveapi.Service, claimFolderID, proofFolderID string, timeout time.Duration) *Receipts {
	return &Receipts{
		svc:           svc,
		claimFolderID: claimFolderID,
		proofFolderID: proofFolderID,
		timeout:       timeout,
	}
}

// Upload stores data as <id>.jpg inside the selected folder. sourcePath
// is the path the image was served under by the chat platform; it must
// carry a .jpg/.jpeg extension or the upload is rejected with
// ErrInvalidMimeType before any bytes leave the process.
func (r *Receipts) Upload(ctx context.Context, folder Folder, id string, data []byte, sourcePath string) error {
	if !IsJPEGPath(sourcePath) {
		return ErrInvalidMimeType
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	meta := &driveapi.File{
		Name:    id + ".jpg",
		Parents: []string{r.folderID(folder)},
	}

	file, err := r.svc.Files.
		Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(jpegMimeType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("upload image %q: %w", meta.Name, err)
	}

	logger.Log.Info().
		Str("file_id", file.Id).
		Str("name", meta.Name).
		Int("size_bytes", len(data)).
		Msg("Image uploaded to Drive")

	return nil
}

// folderID maps the logical folder to its configured Drive ID.
func (r *Receipts) folderID(folder Folder) string {
	if folder == PaymentProofs {
		return r.proofFolderID
	}
	return r.claimFolderID
}

// IsJPEGPath reports whether path has a JPEG extension.
func IsJPEGPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg")
}
