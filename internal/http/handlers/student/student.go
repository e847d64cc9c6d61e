// Package student contains the HTTP handlers for the Student resource.
// Same factory/closure pattern and outcome mapping as the book package;
// the 404 message is "Student not found".
package student

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

// New handles POST /api/students.
//
// Request body:
//
//	{ "name": "Priya Sharma", "rollNumber": "10A-17", "age": 15,
//	  "className": "10A", "email": "priya@school.test", "isActive": true }
//
// name and rollNumber are required; rollNumber must be unique across
// all students (enforced by the store, surfaced as a 400).
func New(st storage.StudentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var req types.CreateStudentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.DecodeError(err))
			return
		}

		if errs := response.Validate(req); errs != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		created, err := st.CreateStudent(r.Context(), req)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, response.OK(created))
	}
}

type listResponse struct {
	Success bool `json:"success"`
	types.StudentList
}

// GetList handles GET /api/students.
//
// Query parameters (all optional): page, limit, sortBy, sortOrder,
// search (name or rollNumber, case-insensitive substring), className,
// isActive.
func GetList(st storage.StudentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing students")

		q := r.URL.Query()
		filter := types.StudentFilter{
			ListOptions: query.Options(q),
			ClassName:   query.OptString(q, "className"),
			IsActive:    query.OptBool(q, "isActive"),
		}

		list, err := st.ListStudents(r.Context(), filter)
		if err != nil {
			slog.Error("error listing students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, listResponse{Success: true, StudentList: list})
	}
}

// GetByID handles GET /api/students/{id}.
func GetByID(st storage.StudentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		found, err := st.GetStudentByID(r.Context(), intID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.NotFound("Student"))
				return
			}
			slog.Error("error getting student",
				slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.OK(found))
	}
}

// Update handles PUT /api/students/{id}. The body is a partial record:
// only fields present in the payload are changed.
func Update(st storage.StudentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var req types.UpdateStudentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.DecodeError(err))
			return
		}

		if errs := response.Validate(req); errs != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		updated, err := st.UpdateStudent(r.Context(), intID, req)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.NotFound("Student"))
				return
			}
			slog.Error("error updating student",
				slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK(updated))
	}
}

// Delete handles DELETE /api/students/{id}. Success is a bare 204.
func Delete(st storage.StudentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if _, err := st.DeleteStudent(r.Context(), intID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.NotFound("Student"))
				return
			}
			slog.Error("error deleting student",
				slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
