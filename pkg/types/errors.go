package types

import "strings"

// Validation messages reported for create requests
const (
	MsgUsernameTooShort     = "username too short"
	MsgUsernameTooLong      = "username too long"
	MsgUsernameInvalidChars = "username has invalid characters"
	MsgInvalidEmail         = "invalid email format"
	MsgEmailTooLong         = "email too long"
	MsgAgeOutOfRange        = "age out of range"
	MsgQuantityNotPositive  = "quantity must be positive"
	MsgProductNameRequired  = "product_name is required"
	MsgProductNameTooLong   = "product_name too long"
)

// ValidationError describes one violated rule on one field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors collects every violation found in a request. A nil or
// empty value means the input is valid.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any violation carries the given message
func (v ValidationErrors) Has(message string) bool {
	for _, e := range v {
		if e.Message == message {
			return true
		}
	}
	return false
}

// orNil returns nil for an empty set so callers can use err != nil
func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
