package sheets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// header matches the shared sheet layout: the lookup only cares about
// the Claim ID and Approval Status columns, wherever they sit.
var testHeader = []any{
	"Claim ID", "Department", "Name", "Date", "Category",
	"Amount", "Description", "Approval Status", "Flag",
}

func row(id, status string) []any {
	return []any{id, "Finance", "Jane Doe", "2025-03-14", "Travel", "$120", "Taxi", status, "Yes"}
}

func TestStatusFromRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows       [][]any
		claimID    string
		want       string
		wantErr    error
		wantErrMsg string
	}{
		{
			name:    "finds pending claim",
			rows:    [][]any{testHeader, row("abc-123", "Pending")},
			claimID: "abc-123",
			want:    "Pending",
		},
		{
			name:    "finds approved claim among many",
			rows:    [][]any{testHeader, row("abc-123", "Pending"), row("def-456", "approved")},
			claimID: "def-456",
			want:    "approved",
		},
		{
			name:    "trims whitespace around the supplied ID",
			rows:    [][]any{testHeader, row("abc-123", "Pending")},
			claimID: "  abc-123  ",
			want:    "Pending",
		},
		{
			name:    "trims whitespace in the stored cell",
			rows:    [][]any{testHeader, row(" abc-123 ", "rejected")},
			claimID: "abc-123",
			want:    "rejected",
		},
		{
			name:    "unknown ID",
			rows:    [][]any{testHeader, row("abc-123", "Pending")},
			claimID: "nope",
			wantErr: ErrClaimNotFound,
		},
		{
			name:    "no fuzzy matching on prefixes",
			rows:    [][]any{testHeader, row("abc-123", "Pending")},
			claimID: "abc",
			wantErr: ErrClaimNotFound,
		},
		{
			name:    "empty table",
			rows:    nil,
			claimID: "abc-123",
			wantErr: ErrClaimNotFound,
		},
		{
			name:    "header only",
			rows:    [][]any{testHeader},
			claimID: "abc-123",
			wantErr: ErrClaimNotFound,
		},
		{
			name:       "header missing the status column",
			rows:       [][]any{{"Claim ID", "Department"}, row("abc-123", "Pending")},
			claimID:    "abc-123",
			wantErrMsg: "missing",
		},
		{
			name:    "short row without a status cell reads as blank",
			rows:    [][]any{testHeader, {"abc-123", "Finance", "Jane Doe"}},
			claimID: "abc-123",
			want:    "",
		},
		{
			name:    "short row without an ID cell is skipped",
			rows:    [][]any{testHeader, {}, row("abc-123", "Pending")},
			claimID: "abc-123",
			want:    "Pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := statusFromRows(tt.rows, tt.claimID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestStatusFromRows_ColumnsByHeaderPosition(t *testing.T) {
	t.Parallel()

	// Columns are named by the header, not by fixed position.
	rows := [][]any{
		{"Approval Status", "Claim ID"},
		{"approved", "abc-123"},
	}

	got, err := statusFromRows(rows, "abc-123")
	require.NoError(t, err)
	require.Equal(t, "approved", got)
}

func TestCellString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "abc", cellString("abc"))
	require.Equal(t, "42", cellString(42))
	require.Equal(t, "1.5", cellString(1.5))
}
