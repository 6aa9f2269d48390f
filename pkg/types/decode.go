package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeJSON decodes a single JSON value from r into v. JSON problems become
// ValidationErrors; reader failures (size limits, broken connections) are
// returned unchanged so the caller can tell them apart.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return ValidationErrors{{Field: typeErr.Field, Message: fmt.Sprintf("%s has invalid type", typeErr.Field)}}
		case errors.As(err, &typeErr):
			return ValidationErrors{{Field: "body", Message: "request body must be a JSON object"}}
		case errors.Is(err, io.EOF):
			return ValidationErrors{{Field: "body", Message: "request body is empty"}}
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return ValidationErrors{{Field: "body", Message: "invalid JSON body"}}
		default:
			return err
		}
	}
	if dec.More() {
		return ValidationErrors{{Field: "body", Message: "invalid JSON body"}}
	}
	return nil
}

func required(errs ValidationErrors, field string, missing bool) ValidationErrors {
	if !missing {
		return errs
	}
	return append(errs, ValidationError{Field: field, Message: field + " is required"})
}
