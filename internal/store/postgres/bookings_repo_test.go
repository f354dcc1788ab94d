package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"clinicbook/backend/internal/store"
)

func TestMapInsertError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unique violation becomes idempotency conflict",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "appointments_pkey"},
			want: store.ErrIdempotencyConflict,
		},
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}),
			want: store.ErrIdempotencyConflict,
		},
		{
			name: "check violation passes through",
			err:  &pgconn.PgError{Code: "23514"},
		},
		{
			name: "non pg error passes through",
			err:  other,
			want: other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapInsertError(tt.err)
			if tt.want == nil {
				if got != tt.err {
					t.Fatalf("err = %v, want unchanged %v", got, tt.err)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("err = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmbeddedMigrationsAreGooseFormatted(t *testing.T) {
	fsys, err := migrations()
	if err != nil {
		t.Fatalf("migrations error: %v", err)
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("no embedded migrations")
	}

	for _, e := range entries {
		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			t.Fatalf("ReadFile(%s) error: %v", e.Name(), err)
		}
		up, err := extractGooseUp(string(b))
		if err != nil {
			t.Fatalf("%s: %v", e.Name(), err)
		}
		if strings.Contains(up, "DROP TABLE") {
			t.Fatalf("%s: up section contains down statements", e.Name())
		}
		if len(splitSQLStatements(up)) == 0 {
			t.Fatalf("%s: empty up section", e.Name())
		}
	}
}
