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

const studentColumns = "id, name, roll_number, age, class_name, email, phone, is_active, created_at, updated_at"

var studentSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"rollNumber": "roll_number",
	"age":        "age",
	"className":  "class_name",
	"email":      "email",
	"phone":      "phone",
	"isActive":   "is_active",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// CreateStudent inserts a new student, assigning its id and setting
// both timestamps to the same instant, and returns the record as
// stored. A duplicate rollNumber fails on the UNIQUE index.
func (s *SQLite) CreateStudent(ctx context.Context, req types.CreateStudentRequest) (types.Student, error) {
	now := time.Now().UTC()

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	result, err := s.Db.ExecContext(ctx, `
		INSERT INTO students (name, roll_number, age, class_name, email, phone, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Name, req.RollNumber, req.Age, req.ClassName, req.Email, req.Phone, isActive, now, now,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return s.GetStudentByID(ctx, id)
}

// GetStudentByID fetches a single student by primary key.
// Returns storage.ErrNotFound when the id matches nothing.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	row := s.Db.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE id = ? LIMIT 1", id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: %w", err)
	}

	return student, nil
}

// ListStudents returns one page of students matching the filter plus
// the total match count, fetched concurrently under the same predicate.
func (s *SQLite) ListStudents(ctx context.Context, filter types.StudentFilter) (types.StudentList, error) {
	where, args := buildStudentFilter(filter)

	orderBy, ok := studentSortColumns[filter.SortBy]
	if !ok {
		orderBy = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	list := types.StudentList{
		Items: make([]types.Student, 0),
		Page:  filter.Page,
		Limit: filter.Limit,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fetchArgs := append(append([]any{}, args...),
			filter.Limit, (filter.Page-1)*filter.Limit)

		rows, err := s.Db.QueryContext(ctx,
			"SELECT "+studentColumns+" FROM students"+where+
				" ORDER BY "+orderBy+" "+direction+" LIMIT ? OFFSET ?",
			fetchArgs...,
		)
		if err != nil {
			return fmt.Errorf("ListStudents: query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			student, err := scanStudent(rows)
			if err != nil {
				return fmt.Errorf("ListStudents: scan row: %w", err)
			}
			list.Items = append(list.Items, student)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("ListStudents: rows iteration: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.Db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM students"+where, args...).Scan(&list.Total)
		if err != nil {
			return fmt.Errorf("ListStudents: count: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return types.StudentList{}, err
	}

	if list.Total > 0 {
		list.TotalPages = (list.Total + int64(filter.Limit) - 1) / int64(filter.Limit)
	}

	return list, nil
}

// UpdateStudent applies the non-nil fields of req to an existing
// student and refreshes updated_at. Returns the record as stored
// afterwards, or storage.ErrNotFound when the id matches nothing.
func (s *SQLite) UpdateStudent(ctx context.Context, id int64, req types.UpdateStudentRequest) (types.Student, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.RollNumber != nil {
		sets = append(sets, "roll_number = ?")
		args = append(args, *req.RollNumber)
	}
	if req.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *req.Age)
	}
	if req.ClassName != nil {
		sets = append(sets, "class_name = ?")
		args = append(args, *req.ClassName)
	}
	if req.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *req.Phone)
	}
	if req.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *req.IsActive)
	}

	args = append(args, id)
	result, err := s.Db.ExecContext(ctx,
		"UPDATE students SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudent: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudent: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Student{}, storage.ErrNotFound
	}

	return s.GetStudentByID(ctx, id)
}

// DeleteStudent removes a student permanently and returns the deleted
// record. Returns storage.ErrNotFound when the id matches nothing.
func (s *SQLite) DeleteStudent(ctx context.Context, id int64) (types.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return types.Student{}, err
	}

	if _, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id); err != nil {
		return types.Student{}, fmt.Errorf("DeleteStudent: exec: %w", err)
	}

	return student, nil
}

// buildStudentFilter translates the filter into a WHERE clause and its
// arguments. The search clause matches name or rollNumber,
// case-insensitively.
func buildStudentFilter(filter types.StudentFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Search != "" {
		conds = append(conds, "(lower(name) LIKE lower(?) OR lower(roll_number) LIKE lower(?))")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.ClassName != nil {
		conds = append(conds, "class_name = ?")
		args = append(args, *filter.ClassName)
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, *filter.IsActive)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanStudent(row rowScanner) (types.Student, error) {
	var student types.Student
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.RollNumber,
		&student.Age,
		&student.ClassName,
		&student.Email,
		&student.Phone,
		&student.IsActive,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	return student, err
}
