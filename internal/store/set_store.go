package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vbonduro/brickinv/internal/domain"
)

// SetStore persists LEGO sets. Every mutation runs in its own transaction:
// either the whole operation commits or nothing is persisted. The
// (user_id, set_number) uniqueness constraint lives in the schema, so two
// concurrent inserts of the same pair are arbitrated by the database itself.
type SetStore struct {
	db *sql.DB
}

func NewSetStore(db *sql.DB) *SetStore {
	return &SetStore{db: db}
}

func (s *SetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Set, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, set_number, name, created_at FROM lego_sets
		WHERE user_id = ? ORDER BY set_number ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var sets []*domain.Set
	for rows.Next() {
		set := &domain.Set{}
		if err := rows.Scan(&set.ID, &set.UserID, &set.SetNumber, &set.Name, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sets: %w", err)
	}

	return sets, nil
}

func (s *SetStore) Create(ctx context.Context, userID uuid.UUID, setNumber int64, name string) (*domain.Set, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO lego_sets (user_id, set_number, name) VALUES (?, ?, ?)
	`, userID, setNumber, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateSet
		}
		return nil, fmt.Errorf("failed to create set: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	set := &domain.Set{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, set_number, name, created_at FROM lego_sets WHERE id = ?
	`, id).Scan(&set.ID, &set.UserID, &set.SetNumber, &set.Name, &set.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get created set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return set, nil
}

func (s *SetStore) Delete(ctx context.Context, userID uuid.UUID, setNumber int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM lego_sets WHERE user_id = ? AND set_number = ?
	`, userID, setNumber)
	if err != nil {
		return fmt.Errorf("failed to delete set: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrSetNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// DeleteAllByUser removes every set the user owns and reports how many rows
// went away. Zero rows is a success, not an error.
func (s *SetStore) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM lego_sets WHERE user_id = ?
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sets: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return rowsAffected, nil
}

// isUniqueViolation reports whether err is a sqlite uniqueness constraint
// failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
