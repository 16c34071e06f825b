// Package gcp builds the authenticated Google API clients shared by the
// ledger and receipt-store adapters.
package gcp

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account. The bot appends and reads
// sheet rows and creates files in two Drive folders; nothing broader.
var scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveFileScope,
}

// Clients bundles the Google API services built from one credential.
type Clients struct {
	Sheets *sheets.Service
	Drive  *drive.Service
}

// NewClients loads the service-account JSON at credentialsFile and
// builds Sheets and Drive services sharing one instrumented HTTP
// client. Credentials are read once at startup; token refresh is
// handled by the oauth2 transport.
func NewClients(ctx context.Context, credentialsFile string) (*Clients, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %q: %w", credentialsFile, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	authedClient := option.WithHTTPClient(oauthClient(ctx, creds, httpClient))

	sheetsSvc, err := sheets.NewService(ctx, authedClient)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, authedClient)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Clients{
		Sheets: sheetsSvc,
		Drive:  driveSvc,
	}, nil
}

// oauthClient wraps base with the credential's token source so every
// API call carries a fresh bearer token over the traced transport.
func oauthClient(ctx context.Context, creds *google.Credentials, base *http.Client) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	return oauth2.NewClient(ctx, creds.TokenSource)
}
