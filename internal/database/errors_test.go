package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func newConstraintDatabase(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()
	db, _ := newFileDatabase(t)
	stmts := []string{
		`CREATE TABLE parents (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE children (
			id INTEGER PRIMARY KEY,
			parent_id INTEGER NOT NULL REFERENCES parents(id),
			name TEXT NOT NULL,
			score INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
			UNIQUE (name, parent_id)
		)`,
		`INSERT INTO parents (id) VALUES (1)`,
		`INSERT INTO children (parent_id, name, score) VALUES (1, 'a', 50)`,
	}
	for _, stmt := range stmts {
		if err := db.Session(ctx).Exec(stmt).Error; err != nil {
			t.Fatalf("setup: %v\nSQL: %s", err, stmt)
		}
	}
	return db
}

func TestClassify_SQLiteConstraints(t *testing.T) {
	ctx := context.Background()
	db := newConstraintDatabase(t)

	tests := []struct {
		name string
		sql  string
		args []any
		want error
	}{
		{
			name: "unique",
			sql:  "INSERT INTO children (parent_id, name, score) VALUES (?, ?, ?)",
			args: []any{1, "a", 10},
			want: ErrUniqueViolation,
		},
		{
			name: "primary key",
			sql:  "INSERT INTO parents (id) VALUES (?)",
			args: []any{1},
			want: ErrUniqueViolation,
		},
		{
			name: "foreign key",
			sql:  "INSERT INTO children (parent_id, name, score) VALUES (?, ?, ?)",
			args: []any{99, "b", 10},
			want: ErrForeignKeyViolation,
		},
		{
			name: "not null",
			sql:  "INSERT INTO children (parent_id, name, score) VALUES (?, NULL, ?)",
			args: []any{1, 10},
			want: ErrNotNullViolation,
		},
		{
			name: "check",
			sql:  "INSERT INTO children (parent_id, name, score) VALUES (?, ?, ?)",
			args: []any{1, "c", 101},
			want: ErrCheckViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(db.Session(ctx).Exec(tt.sql, tt.args...).Error)
			if err == nil {
				t.Fatal("expected constraint error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
			if !errors.Is(err, ErrConstraintViolation) {
				t.Errorf("expected ErrConstraintViolation, got: %v", err)
			}
			var ce *ConstraintError
			if !errors.As(err, &ce) || ce.Kind() != tt.want {
				t.Errorf("expected *ConstraintError of kind %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestClassify_PostgresSQLState(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{code: "23505", want: ErrUniqueViolation},
		{code: "23503", want: ErrForeignKeyViolation},
		{code: "23502", want: ErrNotNullViolation},
		{code: "23514", want: ErrCheckViolation},
		{code: "40001"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, Message: "rejected"}
			err := Classify(fmt.Errorf("exec: %w", pgErr))

			if tt.want == nil {
				if errors.Is(err, ErrConstraintViolation) {
					t.Fatalf("expected SQLSTATE %s to pass through, got: %v", tt.code, err)
				}
				var got *pgconn.PgError
				if !errors.As(err, &got) || got != pgErr {
					t.Errorf("expected the driver error unchanged, got: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
			if !errors.Is(err, ErrConstraintViolation) {
				t.Errorf("expected ErrConstraintViolation, got: %v", err)
			}
			var got *pgconn.PgError
			if !errors.As(err, &got) || got.Code != tt.code {
				t.Errorf("expected the driver error to stay reachable, got: %v", err)
			}
		})
	}
}

func TestClassify_DeleteReferencedParent(t *testing.T) {
	ctx := context.Background()
	db := newConstraintDatabase(t)

	err := Classify(db.Session(ctx).Exec("DELETE FROM parents WHERE id = ?", 1).Error)
	if !errors.Is(err, ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got: %v", err)
	}
}

func TestClassify_PassThrough(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}

	plain := errors.New("boom")
	if got := Classify(plain); got != plain {
		t.Errorf("expected unclassified error unchanged, got: %v", got)
	}

	if got := Classify(gorm.ErrRecordNotFound); !errors.Is(got, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", got)
	}

	if got := Classify(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)); !errors.Is(got, ErrUniqueViolation) {
		t.Errorf("expected ErrUniqueViolation, got: %v", got)
	}

	classified := Classify(gorm.ErrForeignKeyViolated)
	if again := Classify(classified); again != classified {
		t.Errorf("expected classification to be idempotent, got: %v", again)
	}
}
