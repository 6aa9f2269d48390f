package types

import (
	"io"

	"github.com/go-playground/validator/v10"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	EmailMaxLength    = 100
	AgeMin            = 0 // exclusive
	AgeMax            = 100
)

var validate = validator.New()

// User is the external representation of a stored user
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
}

// UserCreate is the input of the create-user operation
type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
}

type userCreatePayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Age      *int    `json:"age"`
}

// DecodeUserCreate reads a JSON create-user body. Shape problems (bad JSON,
// wrong types, missing fields) are reported as ValidationErrors; domain rules
// are left to Validate.
func DecodeUserCreate(r io.Reader) (UserCreate, error) {
	var p userCreatePayload
	if err := decodeJSON(r, &p); err != nil {
		return UserCreate{}, err
	}

	var errs ValidationErrors
	errs = required(errs, "username", p.Username == nil)
	errs = required(errs, "email", p.Email == nil)
	errs = required(errs, "age", p.Age == nil)
	if len(errs) > 0 {
		return UserCreate{}, errs
	}

	return UserCreate{Username: *p.Username, Email: *p.Email, Age: *p.Age}, nil
}

// Validate runs every user rule and returns all violations
func (u UserCreate) Validate() error {
	var errs ValidationErrors

	if len(u.Username) < UsernameMinLength {
		errs = append(errs, ValidationError{Field: "username", Message: MsgUsernameTooShort})
	}
	if len(u.Username) > UsernameMaxLength {
		errs = append(errs, ValidationError{Field: "username", Message: MsgUsernameTooLong})
	}
	if !isUsernameCharset(u.Username) {
		errs = append(errs, ValidationError{Field: "username", Message: MsgUsernameInvalidChars})
	}

	if validate.Var(u.Email, "required,email") != nil {
		errs = append(errs, ValidationError{Field: "email", Message: MsgInvalidEmail})
	}
	if len(u.Email) > EmailMaxLength {
		errs = append(errs, ValidationError{Field: "email", Message: MsgEmailTooLong})
	}

	if u.Age <= AgeMin || u.Age >= AgeMax {
		errs = append(errs, ValidationError{Field: "age", Message: MsgAgeOutOfRange})
	}

	return errs.orNil()
}

// isUsernameCharset reports whether s only holds ASCII letters, digits and
// underscores. The empty string is left to the length rule.
func isUsernameCharset(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}
