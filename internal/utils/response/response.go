// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Every endpoint returns the same envelope: successful calls wrap their
// payload as {"success":true,"data":...} (list endpoints flatten the
// page fields into the envelope), and every failure — validation, auth,
// missing resource, store error — is {"success":false,"message":"..."}.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope returned for every failure case.
type Response struct {
	Success bool   `json:"success"` // always false
	Message string `json:"message"` // human-readable error detail
}

// Data is the envelope returned for single-record success cases.
type Data struct {
	Success bool `json:"success"` // always true
	Data    any  `json:"data"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status
// code. Headers must be set before WriteHeader, which must precede any
// body writes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK wraps a single record in the success envelope.
func OK(data any) Data {
	return Data{Success: true, Data: data}
}

// GeneralError wraps any Go error into the failure envelope.
func GeneralError(err error) Response {
	return Response{Success: false, Message: err.Error()}
}

// NotFound builds the failure envelope for a missing resource,
// e.g. NotFound("Book") → {"success":false,"message":"Book not found"}.
func NotFound(resource string) Response {
	return Response{Success: false, Message: resource + " not found"}
}

// Unauthorized builds the failure envelope for auth failures.
func Unauthorized(message string) Response {
	return Response{Success: false, Message: message}
}

// validate is the shared validator instance. RegisterTagNameFunc makes
// field errors report JSON names ("publishedYear") instead of Go names
// ("PublishedYear"), so messages match what the client actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the validate:"..." struct tags on v and returns the
// individual field errors, or nil if everything passes.
func Validate(v any) validator.ValidationErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return errs
	}
	// Struct() returns ValidationErrors for any struct input; anything
	// else means Validate was called with a non-struct value.
	panic(err)
}

// ValidationError converts validator field errors into a single
// failure envelope, one plain-English clause per failing field.
//
// Example: {"success":false,"message":"field publishedYear is required"}
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "min":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{Success: false, Message: strings.Join(errMessages, ", ")}
}

// DecodeError converts a JSON body decode failure into the failure
// envelope. An empty body and a wrong-typed field each get a specific
// message; anything else reports the decoder's own error text.
func DecodeError(err error) Response {
	if errors.Is(err, io.EOF) {
		return Response{Success: false, Message: "request body is empty"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Response{
			Success: false,
			Message: fmt.Sprintf("field %s must be a %s",
				typeErr.Field, jsonTypeName(typeErr.Type)),
		}
	}

	return GeneralError(err)
}

// jsonTypeName maps a Go type to the JSON type name used in messages.
func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
