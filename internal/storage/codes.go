package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubecode"
)

// ErrNotFound is returned when a saved code does not exist.
var ErrNotFound = errors.New("storage: not found")

// SavedCode is a named cube code in the database.
type SavedCode struct {
	CodeID    string
	Name      string
	Code      string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CodeRepository provides CRUD operations for saved codes.
type CodeRepository struct {
	db *DB
}

// NewCodeRepository creates a new code repository.
func NewCodeRepository(db *DB) *CodeRepository {
	return &CodeRepository{db: db}
}

// Save stores code under name, replacing the code of an existing entry with
// the same name. Invalid codes are rejected with an error matching
// cubecode.ErrInvalidEncoding. It returns the entry's ID.
func (r *CodeRepository) Save(name, code, notes string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name must not be empty")
	}
	if err := cubecode.Check(code); err != nil {
		return "", err
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	now := time.Now().UTC().Format(time.RFC3339)

	var id string
	err := r.db.Transaction(func(tx *sql.Tx) error {
		err := tx.QueryRow("SELECT code_id FROM codes WHERE name = ?", name).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			id = uuid.New().String()
			_, err = tx.Exec(`
				INSERT INTO codes (code_id, name, code, notes, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, name, code, notesPtr, now, now)
		case err == nil:
			_, err = tx.Exec(`
				UPDATE codes SET code = ?, notes = COALESCE(?, notes), updated_at = ?
				WHERE code_id = ?
			`, code, notesPtr, now, id)
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to save code: %w", err)
	}

	return id, nil
}

// Get retrieves a saved code by ID or name.
func (r *CodeRepository) Get(idOrName string) (*SavedCode, error) {
	row := r.db.QueryRow(`
		SELECT code_id, name, code, notes, created_at, updated_at
		FROM codes
		WHERE code_id = ? OR name = ?
		ORDER BY code_id = ? DESC
		LIMIT 1
	`, idOrName, idOrName, idOrName)

	c, err := scanCode(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get code: %w", err)
	}
	return c, nil
}

// List returns saved codes, most recently updated first.
func (r *CodeRepository) List(limit int) ([]SavedCode, error) {
	rows, err := r.db.Query(`
		SELECT code_id, name, code, notes, created_at, updated_at
		FROM codes
		ORDER BY updated_at DESC, name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}
	defer rows.Close()

	var codes []SavedCode
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan code: %w", err)
		}
		codes = append(codes, *c)
	}

	return codes, rows.Err()
}

// Delete removes a saved code by ID or name.
func (r *CodeRepository) Delete(idOrName string) error {
	res, err := r.db.Exec("DELETE FROM codes WHERE code_id = ? OR name = ?", idOrName, idOrName)
	if err != nil {
		return fmt.Errorf("failed to delete code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete code: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrName)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCode(row rowScanner) (*SavedCode, error) {
	var c SavedCode
	var createdAt, updatedAt string
	if err := row.Scan(&c.CodeID, &c.Name, &c.Code, &c.Notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}
