package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGQuerier is the subset of pgxpool.Pool the repository needs. Satisfied by
// pgxmock in tests.
type PGQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool PGQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithQuerier wires an explicit querier (tests).
func NewPostgresRepositoryWithQuerier(q PGQuerier) *PostgresRepository {
	return &PostgresRepository{pool: q}
}

// Create inserts a new row and returns the stored lead.
func (r *PostgresRepository) Create(ctx context.Context, lead *Lead) (*Lead, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (id, full_name, phone, email, mortgage_type, source,
		    utm_source, utm_medium, utm_campaign, ip_address, user_agent, converted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		lead.FullName,
		lead.Phone,
		nullable(lead.Email),
		string(lead.MortgageType),
		lead.Source,
		nullable(lead.UTMSource),
		nullable(lead.UTMMedium),
		nullable(lead.UTMCampaign),
		nullable(lead.IPAddress),
		nullable(lead.UserAgent),
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	stored := *lead
	stored.ID = id.String()
	stored.CreatedAt = createdAt
	return &stored, nil
}

// nullable maps "" to NULL so optional columns stay NULL rather than empty.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
