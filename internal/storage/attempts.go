package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubecode"
)

// attemptTimeFormat has fixed width so created_at sorts as text.
const attemptTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Attempt is one call to the external solver.
type Attempt struct {
	AttemptID string
	Code      string
	MaxSteps  int
	Moves     *string
	Info      *string
	ErrorCode *int
	ErrorText *string
	CreatedAt time.Time
}

// Succeeded reports whether the solver returned a move sequence.
func (a Attempt) Succeeded() bool {
	return a.ErrorCode == nil && a.ErrorText == nil
}

// AttemptRepository records solver attempts.
type AttemptRepository struct {
	db *DB
}

// NewAttemptRepository creates a new attempt repository.
func NewAttemptRepository(db *DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Record stores the outcome of a solver call. solveErr may be nil, a
// *cubecode.SolverError (stored with its number) or any other error.
func (r *AttemptRepository) Record(code string, maxSteps int, sol cubecode.Solution, solveErr error) (string, error) {
	id := uuid.New().String()

	var movesPtr, infoPtr, errTextPtr *string
	var errCodePtr *int
	if len(sol.Moves) > 0 || solveErr == nil {
		moves := sol.String()
		movesPtr = &moves
	}
	if sol.Info != "" {
		infoPtr = &sol.Info
	}
	if solveErr != nil {
		text := solveErr.Error()
		errTextPtr = &text
		var se *cubecode.SolverError
		if errors.As(solveErr, &se) {
			errCodePtr = &se.Code
		}
	}

	_, err := r.db.Exec(`
		INSERT INTO attempts (attempt_id, code, max_steps, moves, info, error_code, error_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, code, maxSteps, movesPtr, infoPtr, errCodePtr, errTextPtr, time.Now().UTC().Format(attemptTimeFormat))
	if err != nil {
		return "", fmt.Errorf("failed to record attempt: %w", err)
	}

	return id, nil
}

// List returns recent attempts, newest first. An empty code lists all codes.
func (r *AttemptRepository) List(code string, limit int) ([]Attempt, error) {
	rows, err := r.db.Query(`
		SELECT attempt_id, code, max_steps, moves, info, error_code, error_text, created_at
		FROM attempts
		WHERE ? = '' OR code = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, code, code, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var createdAt string
		var errCode sql.NullInt64
		if err := rows.Scan(&a.AttemptID, &a.Code, &a.MaxSteps, &a.Moves, &a.Info, &errCode, &a.ErrorText, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		if errCode.Valid {
			n := int(errCode.Int64)
			a.ErrorCode = &n
		}
		a.CreatedAt, _ = time.Parse(attemptTimeFormat, createdAt)
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
