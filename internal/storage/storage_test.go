package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubecode"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, len(migrations), v)

	// Reopening must not reapply migrations.
	again, err := Open(db.Path())
	require.NoError(t, err)
	defer again.Close()
	v, err = again.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, len(migrations), v)
}

func TestCodeRepositorySaveGet(t *testing.T) {
	repo := NewCodeRepository(openTestDB(t))

	id, err := repo.Save("solved", cubecode.SolvedCode, "reset state")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	byName, err := repo.Get("solved")
	require.NoError(t, err)
	require.Equal(t, id, byName.CodeID)
	require.Equal(t, cubecode.SolvedCode, byName.Code)
	require.NotNil(t, byName.Notes)
	require.Equal(t, "reset state", *byName.Notes)

	byID, err := repo.Get(id)
	require.NoError(t, err)
	require.Equal(t, "solved", byID.Name)
}

func TestCodeRepositorySaveReplacesByName(t *testing.T) {
	repo := NewCodeRepository(openTestDB(t))

	s := cubecode.NewCubeState()
	s.Apply(cubecode.R)
	scrambled := cubecode.Encode(s)

	id1, err := repo.Save("work", cubecode.SolvedCode, "")
	require.NoError(t, err)
	id2, err := repo.Save("work", scrambled, "")
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	got, err := repo.Get("work")
	require.NoError(t, err)
	require.Equal(t, scrambled, got.Code)

	list, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCodeRepositoryRejectsInvalidCode(t *testing.T) {
	repo := NewCodeRepository(openTestDB(t))

	_, err := repo.Save("bad", "short", "")
	require.ErrorIs(t, err, cubecode.ErrInvalidEncoding)

	_, err = repo.Save("bad", strings.Repeat("x", 54), "")
	require.ErrorIs(t, err, cubecode.ErrInvalidEncoding)

	_, err = repo.Save("", cubecode.SolvedCode, "")
	require.Error(t, err)
}

func TestCodeRepositoryDelete(t *testing.T) {
	repo := NewCodeRepository(openTestDB(t))

	_, err := repo.Save("gone", cubecode.SolvedCode, "")
	require.NoError(t, err)
	require.NoError(t, repo.Delete("gone"))

	_, err = repo.Get("gone")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete("gone"), ErrNotFound)
}

func TestAttemptRepository(t *testing.T) {
	repo := NewAttemptRepository(openTestDB(t))

	sol, err := cubecode.ParseSolverOutput("R U'\ntook 3ms")
	require.NoError(t, err)
	_, err = repo.Record(cubecode.SolvedCode, 21, sol, nil)
	require.NoError(t, err)

	_, err = repo.Record(cubecode.SolvedCode, 21, cubecode.Solution{}, cubecode.ErrParity)
	require.NoError(t, err)

	all, err := repo.List("", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)

	var ok, failed int
	for _, a := range all {
		if a.Succeeded() {
			ok++
			require.Equal(t, "R U'", *a.Moves)
			require.Equal(t, "took 3ms", *a.Info)
		} else {
			failed++
			require.NotNil(t, a.ErrorCode)
			require.Equal(t, 6, *a.ErrorCode)
			require.Nil(t, a.Moves)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, failed)

	none, err := repo.List(strings.Repeat("U", 54), 10)
	require.NoError(t, err)
	require.Empty(t, none)
}
