package leads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsRepository appends leads as rows to a Google Sheets spreadsheet.
// It satisfies the same sink contract as the Postgres repository, so the
// pipeline does not depend on which one is configured.
//
// The authenticated service handle is created once per process and reused.
// Creation is guarded by a mutex, and a failed append invalidates the cached
// handle so the next call rebuilds it — an expired credential degrades to a
// single failed request, not a wedged process.
type SheetsRepository struct {
	spreadsheetID string
	writeRange    string

	mu  sync.Mutex
	svc *sheets.Service

	newService func(ctx context.Context) (*sheets.Service, error)
	appendRow  func(ctx context.Context, svc *sheets.Service, spreadsheetID, writeRange string, row []any) error
}

// SheetsConfig holds configuration for the spreadsheet sink.
type SheetsConfig struct {
	SpreadsheetID   string
	WriteRange      string // e.g. "Leads!A:H"
	CredentialsJSON string // service-account key
}

// NewSheetsRepository creates a spreadsheet-backed repository.
func NewSheetsRepository(cfg SheetsConfig) *SheetsRepository {
	if cfg.WriteRange == "" {
		cfg.WriteRange = "Leads!A:H"
	}
	creds := []byte(cfg.CredentialsJSON)
	return &SheetsRepository{
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    cfg.WriteRange,
		newService: func(ctx context.Context) (*sheets.Service, error) {
			return sheets.NewService(ctx, option.WithCredentialsJSON(creds), option.WithScopes(sheets.SpreadsheetsScope))
		},
		appendRow: appendValues,
	}
}

func appendValues(ctx context.Context, svc *sheets.Service, spreadsheetID, writeRange string, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := svc.Spreadsheets.Values.Append(spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// Create appends one row: timestamp, name, email, phone, mortgage-type
// label, source, campaign, client IP. The append either lands whole or
// errors; Sheets has no partial rows.
func (r *SheetsRepository) Create(ctx context.Context, lead *Lead) (*Lead, error) {
	svc, err := r.service(ctx)
	if err != nil {
		return nil, fmt.Errorf("leads: sheets client init failed: %w", err)
	}

	stored := *lead
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	row := []any{
		stored.CreatedAt.Format(time.RFC3339),
		stored.FullName,
		stored.Email,
		stored.Phone,
		stored.MortgageType.Label(),
		stored.Source,
		stored.UTMCampaign,
		stored.IPAddress,
	}

	if err := r.appendRow(ctx, svc, r.spreadsheetID, r.writeRange, row); err != nil {
		r.invalidate()
		return nil, fmt.Errorf("leads: sheets append failed: %w", err)
	}
	return &stored, nil
}

func (r *SheetsRepository) service(ctx context.Context) (*sheets.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.svc != nil {
		return r.svc, nil
	}
	svc, err := r.newService(ctx)
	if err != nil {
		return nil, err
	}
	r.svc = svc
	return svc, nil
}

func (r *SheetsRepository) invalidate() {
	r.mu.Lock()
	r.svc = nil
	r.mu.Unlock()
}
