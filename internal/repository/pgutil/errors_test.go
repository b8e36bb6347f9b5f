package pgutil

import (
	"errors"
	"fmt"
	"testing"

	"teapos/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{name: "no rows", in: pgx.ErrNoRows, want: domain.ErrNotFound},
		{name: "wrapped no rows", in: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: domain.ErrNotFound},
		{name: "unique", in: &pgconn.PgError{Code: "23505"}, want: domain.ErrAlreadyExists},
		{name: "foreign key", in: &pgconn.PgError{Code: "23503"}, want: domain.ErrNotFound},
		{name: "bad uuid", in: &pgconn.PgError{Code: "22P02"}, want: domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapError(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	other := errors.New("conn reset")
	if got := MapError(other); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
	if MapError(nil) != nil {
		t.Fatalf("expected nil")
	}
}
