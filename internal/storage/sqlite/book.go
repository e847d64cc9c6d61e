package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
)

const bookColumns = "id, title, author, published_year, genre, price, in_stock, created_at, updated_at"

// bookSortColumns whitelists the sortBy values a client may request and
// maps them to column names. Anything outside the map sorts by
// created_at, and ORDER BY never sees raw client input.
var bookSortColumns = map[string]string{
	"id":            "id",
	"title":         "title",
	"author":        "author",
	"publishedYear": "published_year",
	"genre":         "genre",
	"price":         "price",
	"inStock":       "in_stock",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

// CreateBook inserts a new book, assigning its id and setting both
// timestamps to the same instant, and returns the record as stored.
func (s *SQLite) CreateBook(ctx context.Context, req types.CreateBookRequest) (types.Book, error) {
	now := time.Now().UTC()

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	result, err := s.Db.ExecContext(ctx, `
		INSERT INTO books (title, author, published_year, genre, price, in_stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Title, req.Author, *req.PublishedYear, req.Genre, req.Price, inStock, now, now,
	)
	if err != nil {
		return types.Book{}, fmt.Errorf("CreateBook: exec: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.Book{}, fmt.Errorf("CreateBook: last insert id: %w", err)
	}

	return s.GetBookByID(ctx, id)
}

// GetBookByID fetches a single book by primary key.
// Returns storage.ErrNotFound when the id matches nothing.
func (s *SQLite) GetBookByID(ctx context.Context, id int64) (types.Book, error) {
	row := s.Db.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE id = ? LIMIT 1", id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Book{}, storage.ErrNotFound
		}
		return types.Book{}, fmt.Errorf("GetBookByID: %w", err)
	}

	return book, nil
}

// ListBooks returns one page of books matching the filter plus the
// total match count. The page fetch and the count are independent
// reads under the same predicate, so they run concurrently.
func (s *SQLite) ListBooks(ctx context.Context, filter types.BookFilter) (types.BookList, error) {
	where, args := buildBookFilter(filter)

	orderBy, ok := bookSortColumns[filter.SortBy]
	if !ok {
		orderBy = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	list := types.BookList{
		Items: make([]types.Book, 0),
		Page:  filter.Page,
		Limit: filter.Limit,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fetchArgs := append(append([]any{}, args...),
			filter.Limit, (filter.Page-1)*filter.Limit)

		rows, err := s.Db.QueryContext(ctx,
			"SELECT "+bookColumns+" FROM books"+where+
				" ORDER BY "+orderBy+" "+direction+" LIMIT ? OFFSET ?",
			fetchArgs...,
		)
		if err != nil {
			return fmt.Errorf("ListBooks: query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			book, err := scanBook(rows)
			if err != nil {
				return fmt.Errorf("ListBooks: scan row: %w", err)
			}
			list.Items = append(list.Items, book)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("ListBooks: rows iteration: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.Db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM books"+where, args...).Scan(&list.Total)
		if err != nil {
			return fmt.Errorf("ListBooks: count: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return types.BookList{}, err
	}

	if list.Total > 0 {
		list.TotalPages = (list.Total + int64(filter.Limit) - 1) / int64(filter.Limit)
	}

	return list, nil
}

// UpdateBook applies the non-nil fields of req to an existing book and
// refreshes updated_at. Returns the record as stored afterwards, or
// storage.ErrNotFound when the id matches nothing.
func (s *SQLite) UpdateBook(ctx context.Context, id int64, req types.UpdateBookRequest) (types.Book, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *req.Author)
	}
	if req.PublishedYear != nil {
		sets = append(sets, "published_year = ?")
		args = append(args, *req.PublishedYear)
	}
	if req.Genre != nil {
		sets = append(sets, "genre = ?")
		args = append(args, *req.Genre)
	}
	if req.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *req.Price)
	}
	if req.InStock != nil {
		sets = append(sets, "in_stock = ?")
		args = append(args, *req.InStock)
	}

	args = append(args, id)
	result, err := s.Db.ExecContext(ctx,
		"UPDATE books SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return types.Book{}, fmt.Errorf("UpdateBook: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Book{}, fmt.Errorf("UpdateBook: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Book{}, storage.ErrNotFound
	}

	// Re-fetch so the caller gets exactly what is stored.
	return s.GetBookByID(ctx, id)
}

// DeleteBook removes a book permanently and returns the deleted record.
// Returns storage.ErrNotFound when the id matches nothing.
func (s *SQLite) DeleteBook(ctx context.Context, id int64) (types.Book, error) {
	book, err := s.GetBookByID(ctx, id)
	if err != nil {
		return types.Book{}, err
	}

	if _, err := s.Db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id); err != nil {
		return types.Book{}, fmt.Errorf("DeleteBook: exec: %w", err)
	}

	return book, nil
}

// buildBookFilter translates the filter into a WHERE clause and its
// arguments. Clauses are ANDed; the search clause is an OR-group of
// case-insensitive substring matches over title and author.
func buildBookFilter(filter types.BookFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Search != "" {
		conds = append(conds, "(lower(title) LIKE lower(?) OR lower(author) LIKE lower(?))")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Genre != nil {
		conds = append(conds, "genre = ?")
		args = append(args, *filter.Genre)
	}
	if filter.InStock != nil {
		conds = append(conds, "in_stock = ?")
		args = append(args, *filter.InStock)
	}
	// Price range is inclusive on both ends; either bound may appear alone.
	if filter.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (types.Book, error) {
	var book types.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublishedYear,
		&book.Genre,
		&book.Price,
		&book.InStock,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	return book, err
}
