// Package book contains the HTTP handlers for the Book resource.
//
// Handlers are built with the factory/closure pattern: each exported
// function takes the storage dependency once at route-registration time
// and returns the http.HandlerFunc invoked on every request.
//
// Outcome mapping is uniform across the resource:
//
//	created            → 201 {success:true, data}
//	found / updated    → 200 {success:true, data}
//	listed             → 200 {success:true, items, total, page, limit, totalPages}
//	deleted            → 204, empty body
//	unknown id         → 404 {success:false, message:"Book not found"}
//	invalid input      → 400 {success:false, message}
//	store failure      → 400 {success:false, message} (the store's message)
package book

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
	"github.com/aanand-mishra/library-api/internal/utils/query"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// New handles POST /api/books.
//
// Request body:
//
//	{ "title": "The Hobbit", "author": "J.R.R. Tolkien", "publishedYear": 1937,
//	  "genre": "Fantasy", "price": 12.5, "inStock": true }
//
// title, author and publishedYear are required; validation runs before
// the store is touched.
func New(st storage.BookStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a book")

		var req types.CreateBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.DecodeError(err))
			return
		}

		if errs := response.Validate(req); errs != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		created, err := st.CreateBook(r.Context(), req)
		if err != nil {
			slog.Error("error creating book", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("book created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, response.OK(created))
	}
}

// listResponse flattens the page fields into the success envelope.
type listResponse struct {
	Success bool `json:"success"`
	types.BookList
}

// GetList handles GET /api/books.
//
// Query parameters (all optional): page, limit, sortBy, sortOrder,
// search (title or author, case-insensitive substring), genre, inStock,
// minPrice, maxPrice.
func GetList(st storage.BookStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing books")

		q := r.URL.Query()
		filter := types.BookFilter{
			ListOptions: query.Options(q),
			Genre:       query.OptString(q, "genre"),
			InStock:     query.OptBool(q, "inStock"),
			MinPrice:    query.OptFloat(q, "minPrice"),
			MaxPrice:    query.OptFloat(q, "maxPrice"),
		}

		list, err := st.ListBooks(r.Context(), filter)
		if err != nil {
			slog.Error("error listing books", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, listResponse{Success: true, BookList: list})
	}
}

// GetByID handles GET /api/books/{id}.
func GetByID(st storage.BookStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a book", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		found, err := st.GetBookByID(r.Context(), intID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.NotFound("Book"))
				return
			}
			slog.Error("error getting book",
				slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.OK(found))
	}
}

// Update handles PUT /api/books/{id}.
//
// The body is a partial record: only fields present in the payload are
// changed; absent fields keep their stored values.
func Update(st storage.BookStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a book", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var req types.UpdateBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.DecodeError(err))
			return
		}

		if errs := response.Validate(req); errs != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		updated, err := st.UpdateBook(r.Context(), intID, req)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.NotFound("Book"))
				return
			}
			slog.Error("error updating book",
				slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("book updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK(updated))
	}
}

// Delete handles DELETE /api/books/{id}. Deletion is immediate and
// permanent; success is a bare 204.
func Delete(st storage.BookStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a book", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if _, err := st.DeleteBook(r.Context(), intID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.NotFound("Book"))
				return
			}
			slog.Error("error deleting book",
				slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("book deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
