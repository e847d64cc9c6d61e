package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/types"
)

// newTestStore opens a fresh database in a per-test temp directory.
func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := &config.Config{
		Env:         "dev",
		StoragePath: filepath.Join(t.TempDir(), "test.db"),
	}

	st, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return st
}

func ptr[T any](v T) *T { return &v }

// defaultOptions mirrors what the query parse layer produces when no
// list parameters are sent.
func defaultOptions() types.ListOptions {
	return types.ListOptions{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: "desc"}
}

func createBook(t *testing.T, st *SQLite, req types.CreateBookRequest) types.Book {
	t.Helper()
	book, err := st.CreateBook(context.Background(), req)
	require.NoError(t, err)
	return book
}

func createStudent(t *testing.T, st *SQLite, req types.CreateStudentRequest) types.Student {
	t.Helper()
	student, err := st.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	return student
}
