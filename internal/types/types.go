// Package types holds the shared data structures (models and request
// shapes) used across the application. Keeping them in one place
// prevents import cycles — handlers, storage, and utils can all import
// types without depending on each other.
package types

import "time"

// Book represents a book record.
//
// Optional fields are pointers so a missing value encodes as absent
// JSON rather than a zero value. CreatedAt and UpdatedAt are managed
// by the storage layer: set on create (equal to each other), and
// UpdatedAt refreshed on every update.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear int64     `json:"publishedYear"`
	Genre         *string   `json:"genre,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	InStock       bool      `json:"inStock"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Student represents a student record. RollNumber is unique across all
// students, enforced by the store.
type Student struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	RollNumber string    `json:"rollNumber"`
	Age        *int64    `json:"age,omitempty"`
	ClassName  *string   `json:"className,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateBookRequest is the POST /api/books payload.
//
// PublishedYear is a pointer so "omitted" is distinguishable from a
// legitimate zero; validate:"required" rejects only the nil case.
type CreateBookRequest struct {
	Title         string   `json:"title"         validate:"required"`
	Author        string   `json:"author"        validate:"required"`
	PublishedYear *int64   `json:"publishedYear" validate:"required"`
	Genre         *string  `json:"genre"`
	Price         *float64 `json:"price"         validate:"omitempty,min=0"`
	InStock       *bool    `json:"inStock"`
}

// UpdateBookRequest is the PUT /api/books/{id} payload. Every field is
// optional; nil means "leave unchanged".
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	PublishedYear *int64   `json:"publishedYear"`
	Genre         *string  `json:"genre"`
	Price         *float64 `json:"price" validate:"omitempty,min=0"`
	InStock       *bool    `json:"inStock"`
}

// CreateStudentRequest is the POST /api/students payload.
type CreateStudentRequest struct {
	Name       string  `json:"name"       validate:"required"`
	RollNumber string  `json:"rollNumber" validate:"required"`
	Age        *int64  `json:"age"        validate:"omitempty,min=0"`
	ClassName  *string `json:"className"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	IsActive   *bool   `json:"isActive"`
}

// UpdateStudentRequest is the PUT /api/students/{id} payload.
type UpdateStudentRequest struct {
	Name       *string `json:"name"`
	RollNumber *string `json:"rollNumber"`
	Age        *int64  `json:"age" validate:"omitempty,min=0"`
	ClassName  *string `json:"className"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	IsActive   *bool   `json:"isActive"`
}

// ListOptions are the pagination and sorting parameters shared by every
// list endpoint. The query parse layer guarantees Page >= 1, Limit >= 1
// and SortOrder in {"asc", "desc"}.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

// BookFilter carries the book-specific exact-match and range filters.
// Pointer fields distinguish "filter absent" from a zero filter value.
type BookFilter struct {
	ListOptions
	Genre    *string
	InStock  *bool
	MinPrice *float64
	MaxPrice *float64
}

// StudentFilter carries the student-specific exact-match filters.
type StudentFilter struct {
	ListOptions
	ClassName *string
	IsActive  *bool
}

// BookList is the result of a paginated book query.
type BookList struct {
	Items      []Book `json:"items"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int64  `json:"totalPages"`
}

// StudentList is the result of a paginated student query.
type StudentList struct {
	Items      []Student `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int64     `json:"totalPages"`
}
