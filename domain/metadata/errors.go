package metadata

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField     = errors.New("missing field")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrMalformedPayload = errors.New("malformed payload")

	errNilDocument = errors.New("nil document")
)

type SchemaErrorKind uint8

const (
	MissingField SchemaErrorKind = iota + 1
	TypeMismatch
	MalformedPayload
)

func (k SchemaErrorKind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case TypeMismatch:
		return "TypeMismatch"
	case MalformedPayload:
		return "MalformedPayload"
	}
	return fmt.Sprintf("SchemaErrorKind(%d)", k)
}

func (k SchemaErrorKind) sentinel() error {
	switch k {
	case MissingField:
		return ErrMissingField
	case TypeMismatch:
		return ErrTypeMismatch
	case MalformedPayload:
		return ErrMalformedPayload
	}
	return nil
}

// SchemaError reports why a payload could not be mapped onto the model.
// Field is a path into the document, e.g. "attributes[2].value", and is
// empty for errors about the payload as a whole.
type SchemaError struct {
	Kind  SchemaErrorKind
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("metadata: %s", e.Kind.sentinel())
	if len(e.Field) > 0 {
		msg = fmt.Sprintf("%s %q", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *SchemaError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func missingField(path string) error {
	return &SchemaError{Kind: MissingField, Field: path}
}

func typeMismatch(path, expected string, got interface{}) error {
	return &SchemaError{
		Kind:  TypeMismatch,
		Field: path,
		Err:   fmt.Errorf("expected %s, got %s", expected, jsonKind(got)),
	}
}

func malformedPayload(err error) error {
	return &SchemaError{Kind: MalformedPayload, Err: err}
}
