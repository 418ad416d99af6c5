package leads

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), "דנה לוי", "0501234567", nil, "new", "website",
			nil, nil, nil, "203.0.113.7", "Mozilla/5.0").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	repo := NewPostgresRepositoryWithQuerier(mock)
	lead := &Lead{
		FullName:     "דנה לוי",
		Phone:        "0501234567",
		MortgageType: MortgageNew,
		Source:       "website",
		IPAddress:    "203.0.113.7",
		UserAgent:    "Mozilla/5.0",
	}

	stored, err := repo.Create(context.Background(), lead)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected generated ID")
	}
	if !stored.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %s, got %s", now, stored.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepositoryCreateFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("permission denied for table leads"))

	repo := NewPostgresRepositoryWithQuerier(mock)
	lead := &Lead{FullName: "דנה לוי", Phone: "0501234567", MortgageType: MortgageNew, Source: "website"}

	_, err = repo.Create(context.Background(), lead)
	if err == nil {
		t.Fatal("expected error")
	}
	// The wrapped error keeps the cause for server-side diagnostics.
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("expected wrapped cause, got: %v", err)
	}
}
