package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
)

func TestCreateBook(t *testing.T) {
	st := newTestStore(t)

	book := createBook(t, st, types.CreateBookRequest{
		Title:         "The Hobbit",
		Author:        "J.R.R. Tolkien",
		PublishedYear: ptr(int64(1937)),
		Genre:         ptr("Fantasy"),
		Price:         ptr(12.5),
	})

	assert.Positive(t, book.ID)
	assert.Equal(t, "The Hobbit", book.Title)
	assert.Equal(t, "J.R.R. Tolkien", book.Author)
	assert.Equal(t, int64(1937), book.PublishedYear)
	require.NotNil(t, book.Genre)
	assert.Equal(t, "Fantasy", *book.Genre)
	require.NotNil(t, book.Price)
	assert.Equal(t, 12.5, *book.Price)
	assert.True(t, book.InStock, "inStock defaults to true")
	assert.Equal(t, book.CreatedAt, book.UpdatedAt,
		"timestamps are equal on create")
}

func TestCreateBook_AssignsDistinctIDs(t *testing.T) {
	st := newTestStore(t)

	first := createBook(t, st, types.CreateBookRequest{
		Title: "A", Author: "X", PublishedYear: ptr(int64(2000)),
	})
	second := createBook(t, st, types.CreateBookRequest{
		Title: "B", Author: "Y", PublishedYear: ptr(int64(2001)),
	})

	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetBookByID_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetBookByID(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateBook_PartialLeavesOtherFieldsIntact(t *testing.T) {
	st := newTestStore(t)

	created := createBook(t, st, types.CreateBookRequest{
		Title:         "The Hobbit",
		Author:        "J.R.R. Tolkien",
		PublishedYear: ptr(int64(1937)),
		Genre:         ptr("Fantasy"),
		Price:         ptr(12.5),
	})

	updated, err := st.UpdateBook(context.Background(), created.ID,
		types.UpdateBookRequest{Price: ptr(9.99)})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "The Hobbit", updated.Title)
	assert.Equal(t, "J.R.R. Tolkien", updated.Author)
	assert.Equal(t, int64(1937), updated.PublishedYear)
	require.NotNil(t, updated.Genre)
	assert.Equal(t, "Fantasy", *updated.Genre)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 9.99, *updated.Price)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt,
		"createdAt is immutable")
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateBook_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.UpdateBook(context.Background(), 42,
		types.UpdateBookRequest{Title: ptr("nope")})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteBook(t *testing.T) {
	st := newTestStore(t)

	created := createBook(t, st, types.CreateBookRequest{
		Title: "Gone", Author: "Soon", PublishedYear: ptr(int64(2020)),
	})

	deleted, err := st.DeleteBook(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "Gone", deleted.Title)

	_, err = st.GetBookByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.DeleteBook(context.Background(), created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound, "double delete")
}

func TestListBooks_Pagination(t *testing.T) {
	st := newTestStore(t)

	for i := 0; i < 25; i++ {
		createBook(t, st, types.CreateBookRequest{
			Title:         fmt.Sprintf("Book %02d", i),
			Author:        "Author",
			PublishedYear: ptr(int64(1990 + i)),
		})
	}

	page1, err := st.ListBooks(context.Background(),
		types.BookFilter{ListOptions: defaultOptions()})
	require.NoError(t, err)

	assert.Equal(t, int64(25), page1.Total)
	assert.Equal(t, int64(3), page1.TotalPages)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, 10, page1.Limit)
	assert.Len(t, page1.Items, 10)

	opts := defaultOptions()
	opts.Page = 3
	page3, err := st.ListBooks(context.Background(),
		types.BookFilter{ListOptions: opts})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.Equal(t, int64(25), page3.Total)
}

func TestListBooks_Empty(t *testing.T) {
	st := newTestStore(t)

	list, err := st.ListBooks(context.Background(),
		types.BookFilter{ListOptions: defaultOptions()})
	require.NoError(t, err)

	assert.NotNil(t, list.Items, "items is [] not null")
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Total)
	assert.Zero(t, list.TotalPages, "totalPages is 0 when total is 0")
}

func TestListBooks_SearchMatchesTitleOrAuthor(t *testing.T) {
	st := newTestStore(t)

	createBook(t, st, types.CreateBookRequest{
		Title: "The Hobbit", Author: "J.R.R. Tolkien", PublishedYear: ptr(int64(1937)),
	})
	createBook(t, st, types.CreateBookRequest{
		Title: "Tolkien: A Biography", Author: "Humphrey Carpenter", PublishedYear: ptr(int64(1977)),
	})
	createBook(t, st, types.CreateBookRequest{
		Title: "Dune", Author: "Frank Herbert", PublishedYear: ptr(int64(1965)),
	})

	opts := defaultOptions()
	opts.Search = "tolkien"
	list, err := st.ListBooks(context.Background(),
		types.BookFilter{ListOptions: opts})
	require.NoError(t, err)

	assert.Equal(t, int64(2), list.Total, "case-insensitive match on title or author")
	for _, b := range list.Items {
		assert.NotEqual(t, "Dune", b.Title)
	}
}

func TestListBooks_ExactAndRangeFilters(t *testing.T) {
	st := newTestStore(t)

	createBook(t, st, types.CreateBookRequest{
		Title: "A", Author: "X", PublishedYear: ptr(int64(2000)),
		Genre: ptr("Fantasy"), Price: ptr(10.0),
	})
	createBook(t, st, types.CreateBookRequest{
		Title: "B", Author: "Y", PublishedYear: ptr(int64(2001)),
		Genre: ptr("Fantasy"), Price: ptr(30.0), InStock: ptr(false),
	})
	createBook(t, st, types.CreateBookRequest{
		Title: "C", Author: "Z", PublishedYear: ptr(int64(2002)),
		Genre: ptr("Horror"), Price: ptr(20.0),
	})

	ctx := context.Background()

	byGenre, err := st.ListBooks(ctx, types.BookFilter{
		ListOptions: defaultOptions(), Genre: ptr("Fantasy"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byGenre.Total)

	inStock, err := st.ListBooks(ctx, types.BookFilter{
		ListOptions: defaultOptions(), InStock: ptr(false),
	})
	require.NoError(t, err)
	require.Len(t, inStock.Items, 1)
	assert.Equal(t, "B", inStock.Items[0].Title)

	// Inclusive on both ends.
	priced, err := st.ListBooks(ctx, types.BookFilter{
		ListOptions: defaultOptions(), MinPrice: ptr(10.0), MaxPrice: ptr(20.0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), priced.Total)

	combined, err := st.ListBooks(ctx, types.BookFilter{
		ListOptions: defaultOptions(), Genre: ptr("Fantasy"), MinPrice: ptr(20.0),
	})
	require.NoError(t, err)
	require.Len(t, combined.Items, 1)
	assert.Equal(t, "B", combined.Items[0].Title)
}

func TestListBooks_Sorting(t *testing.T) {
	st := newTestStore(t)

	createBook(t, st, types.CreateBookRequest{
		Title: "B", Author: "X", PublishedYear: ptr(int64(2005)),
	})
	createBook(t, st, types.CreateBookRequest{
		Title: "A", Author: "Y", PublishedYear: ptr(int64(1999)),
	})
	createBook(t, st, types.CreateBookRequest{
		Title: "C", Author: "Z", PublishedYear: ptr(int64(2010)),
	})

	opts := defaultOptions()
	opts.SortBy = "publishedYear"
	opts.SortOrder = "asc"
	list, err := st.ListBooks(context.Background(),
		types.BookFilter{ListOptions: opts})
	require.NoError(t, err)

	require.Len(t, list.Items, 3)
	assert.Equal(t, int64(1999), list.Items[0].PublishedYear)
	assert.Equal(t, int64(2005), list.Items[1].PublishedYear)
	assert.Equal(t, int64(2010), list.Items[2].PublishedYear)

	opts.SortOrder = "desc"
	list, err = st.ListBooks(context.Background(),
		types.BookFilter{ListOptions: opts})
	require.NoError(t, err)
	assert.Equal(t, int64(2010), list.Items[0].PublishedYear)
}

func TestListBooks_UnknownSortByFallsBack(t *testing.T) {
	st := newTestStore(t)

	createBook(t, st, types.CreateBookRequest{
		Title: "A", Author: "X", PublishedYear: ptr(int64(2000)),
	})

	opts := defaultOptions()
	opts.SortBy = "no_such_column; DROP TABLE books"
	list, err := st.ListBooks(context.Background(),
		types.BookFilter{ListOptions: opts})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
