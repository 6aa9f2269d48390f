package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() UserCreate {
	return UserCreate{Username: "john_doe", Email: "john@example.com", Age: 25}
}

func TestUserCreate_Valid(t *testing.T) {
	assert.NoError(t, validUser().Validate())
}

func TestUserCreate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *UserCreate)
		message string
	}{
		{"UsernameShort", func(u *UserCreate) { u.Username = "jo" }, MsgUsernameTooShort},
		{"UsernameEmpty", func(u *UserCreate) { u.Username = "" }, MsgUsernameTooShort},
		{"UsernameAt", func(u *UserCreate) { u.Username = "john@doe" }, MsgUsernameInvalidChars},
		{"UsernameSpace", func(u *UserCreate) { u.Username = "john doe" }, MsgUsernameInvalidChars},
		{"UsernameDash", func(u *UserCreate) { u.Username = "john-doe" }, MsgUsernameInvalidChars},
		{"UsernameNonASCII", func(u *UserCreate) { u.Username = "jöhn" }, MsgUsernameInvalidChars},
		{"UsernameLong", func(u *UserCreate) { u.Username = strings.Repeat("a", 51) }, MsgUsernameTooLong},
		{"EmailInvalid", func(u *UserCreate) { u.Email = "invalid-email" }, MsgInvalidEmail},
		{"EmailEmpty", func(u *UserCreate) { u.Email = "" }, MsgInvalidEmail},
		{"EmailNoDomain", func(u *UserCreate) { u.Email = "john@" }, MsgInvalidEmail},
		{"EmailLong", func(u *UserCreate) { u.Email = strings.Repeat("a", 95) + "@x.com" }, MsgEmailTooLong},
		{"AgeNegative", func(u *UserCreate) { u.Age = -5 }, MsgAgeOutOfRange},
		{"AgeZero", func(u *UserCreate) { u.Age = 0 }, MsgAgeOutOfRange},
		{"AgeHundred", func(u *UserCreate) { u.Age = 100 }, MsgAgeOutOfRange},
		{"AgeTooLarge", func(u *UserCreate) { u.Age = 150 }, MsgAgeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)

			err := u.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.Has(tt.message), "expected %q in %v", tt.message, verrs)
		})
	}
}

func TestUserCreate_BoundaryValues(t *testing.T) {
	u := validUser()
	u.Username = "abc"
	u.Age = 1
	assert.NoError(t, u.Validate())

	u.Username = strings.Repeat("z", 50)
	u.Age = 99
	assert.NoError(t, u.Validate())
}

func TestUserCreate_ReportsAllViolations(t *testing.T) {
	err := UserCreate{Username: "j!", Email: "nope", Age: 100}.Validate()

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 4)
	assert.Equal(t, "username too short; username has invalid characters; invalid email format; age out of range", err.Error())
}

func TestDecodeUserCreate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		in, err := DecodeUserCreate(strings.NewReader(`{"username":"johndoe","email":"john@example.com","age":30}`))
		require.NoError(t, err)
		assert.Equal(t, UserCreate{Username: "johndoe", Email: "john@example.com", Age: 30}, in)
	})

	t.Run("UnknownFieldsIgnored", func(t *testing.T) {
		_, err := DecodeUserCreate(strings.NewReader(`{"username":"johndoe","email":"john@example.com","age":30,"id":7}`))
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"Empty", ``, "request body is empty"},
		{"Garbage", `{"username":`, "invalid JSON body"},
		{"NotObject", `[1,2]`, "request body must be a JSON object"},
		{"AgeString", `{"username":"johndoe","email":"john@example.com","age":"30"}`, "age has invalid type"},
		{"AgeFloat", `{"username":"johndoe","email":"john@example.com","age":30.5}`, "age has invalid type"},
		{"MissingAge", `{"username":"johndoe","email":"john@example.com"}`, "age is required"},
		{"NullUsername", `{"username":null,"email":"john@example.com","age":30}`, "username is required"},
		{"TrailingData", `{"username":"johndoe","email":"john@example.com","age":30} {}`, "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeUserCreate(strings.NewReader(tt.body))
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.Has(tt.message), "expected %q in %v", tt.message, verrs)
		})
	}
}
