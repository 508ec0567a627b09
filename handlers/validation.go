package handlers

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

const maxBodyBytes = 8 << 20

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

// validationError carries field-level reasons keyed by JSON field name.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for field, reason := range e.fields {
		parts = append(parts, field+" "+reason)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, reason string) error {
	return &validationError{fields: map[string]string{field: reason}}
}

// decodeJSON reads the body into v and runs struct validation on it.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := readJSON(r, v); err != nil {
		return err
	}
	return validateStruct(v, "")
}

func readJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return bindingError(err)
	}
	return nil
}

func validateStruct(v interface{}, prefix string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[prefix+fieldPath(fe)] = formatFieldError(fe)
	}
	return &validationError{fields: fields}
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func bindingError(err error) error {
	if errors.Is(err, io.EOF) {
		return fieldError("body", "request body is empty")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fieldError("body", fmt.Sprintf("invalid JSON at byte offset %d", syntaxErr.Offset))
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return fieldError(field, "should be of type "+typeErr.Type.String())
	}
	return fieldError("body", err.Error())
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "len":
		return "must have length " + fe.Param()
	}
	return "failed validation for '" + fe.Tag() + "'"
}
