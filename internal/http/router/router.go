// Package router assembles the route table and middleware chain.
package router

import (
	"net/http"

	"github.com/aanand-mishra/library-api/internal/http/handlers/book"
	"github.com/aanand-mishra/library-api/internal/http/handlers/student"
	"github.com/aanand-mishra/library-api/internal/http/middleware"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// New registers all routes and returns the root handler.
//
// Route table:
//
//	GET    /                     → liveness message (open)
//	POST   /api/books            → create a book
//	GET    /api/books            → list books (filter/sort/paginate)
//	GET    /api/books/{id}       → get one book
//	PUT    /api/books/{id}       → partially update a book
//	DELETE /api/books/{id}       → delete a book
//	       /api/students…        → same five routes for students
//
// Everything under /api sits behind the bearer-token auth gate;
// request-id and logging middleware wrap the whole tree.
func New(books storage.BookStorage, students storage.StudentStorage, apiKey string) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /api/books", book.New(books))
	api.HandleFunc("GET /api/books", book.GetList(books))
	api.HandleFunc("GET /api/books/{id}", book.GetByID(books))
	api.HandleFunc("PUT /api/books/{id}", book.Update(books))
	api.HandleFunc("DELETE /api/books/{id}", book.Delete(books))

	api.HandleFunc("POST /api/students", student.New(students))
	api.HandleFunc("GET /api/students", student.GetList(students))
	api.HandleFunc("GET /api/students/{id}", student.GetByID(students))
	api.HandleFunc("PUT /api/students/{id}", student.Update(students))
	api.HandleFunc("DELETE /api/students/{id}", student.Delete(students))

	root := http.NewServeMux()
	root.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK,
			map[string]string{"message": "Library API is running"})
	})
	root.Handle("/api/", middleware.Auth(apiKey)(api))

	return middleware.RequestID(middleware.Logging(root))
}
