// Package storage defines the storage contracts that any database
// backend must satisfy. Handlers depend only on these interfaces, so
// swapping the backend means implementing them and changing one line
// in main — zero handler changes.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/library-api/internal/types"
)

// ErrNotFound is the sentinel returned whenever an id matches no
// record. Absence is an expected outcome, not a failure: handlers map
// it to 404 and every other error to a store failure.
var ErrNotFound = errors.New("storage: record not found")

// BookStorage is the database contract for the books collection.
type BookStorage interface {
	// CreateBook persists a new book, assigning its id and timestamps,
	// and returns the record as stored.
	CreateBook(ctx context.Context, req types.CreateBookRequest) (types.Book, error)

	// GetBookByID fetches a single book. Returns ErrNotFound on absence.
	GetBookByID(ctx context.Context, id int64) (types.Book, error)

	// ListBooks returns one page of books matching the filter together
	// with the total match count (independent of pagination).
	ListBooks(ctx context.Context, filter types.BookFilter) (types.BookList, error)

	// UpdateBook applies the non-nil fields of req to an existing book,
	// refreshes its updatedAt, and returns the record as stored.
	// Returns ErrNotFound if the id matches nothing.
	UpdateBook(ctx context.Context, id int64, req types.UpdateBookRequest) (types.Book, error)

	// DeleteBook removes a book permanently and returns the deleted
	// record. Returns ErrNotFound if the id matches nothing.
	DeleteBook(ctx context.Context, id int64) (types.Book, error)
}

// StudentStorage is the database contract for the students collection.
// RollNumber uniqueness is enforced here, not by callers.
type StudentStorage interface {
	CreateStudent(ctx context.Context, req types.CreateStudentRequest) (types.Student, error)
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)
	ListStudents(ctx context.Context, filter types.StudentFilter) (types.StudentList, error)
	UpdateStudent(ctx context.Context, id int64, req types.UpdateStudentRequest) (types.Student, error)
	DeleteStudent(ctx context.Context, id int64) (types.Student, error)
}
