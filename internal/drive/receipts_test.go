package drive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsJPEGPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "jpg", path: "photos/receipt.jpg", want: true},
		{name: "jpeg", path: "photos/receipt.jpeg", want: true},
		{name: "uppercase extension", path: "photos/RECEIPT.JPG", want: true},
		{name: "png", path: "photos/receipt.png", want: false},
		{name: "pdf", path: "docs/receipt.pdf", want: false},
		{name: "no extension", path: "photos/receipt", want: false},
		{name: "jpg in the middle only", path: "photos/receipt.jpg.png", want: false},
		{name: "empty", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, IsJPEGPath(tt.path))
		})
	}
}

func TestUpload_RejectsNonJPEGBeforeAnyNetworkCall(t *testing.T) {
	t.Parallel()

	// A nil service would panic if Upload got past the extension
	// check; the rejection must happen before any bytes move.
	r := NewReceipts(nil, "claims-folder", "proofs-folder", time.Second)

	err := r.Upload(context.Background(), ClaimReceipts, "abc-123", []byte("data"), "photos/receipt.png")
	require.ErrorIs(t, err, ErrInvalidMimeType)

	err = r.Upload(context.Background(), PaymentProofs, "abc-123", []byte("data"), "scan.pdf")
	require.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestFolderID(t *testing.T) {
	t.Parallel()

	r := NewReceipts(nil, "claims-folder", "proofs-folder", time.Second)

	require.Equal(t, "claims-folder", r.folderID(ClaimReceipts))
	require.Equal(t, "proofs-folder", r.folderID(PaymentProofs))
}
