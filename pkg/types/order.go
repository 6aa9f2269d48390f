package types

import (
	"io"
	"unicode/utf8"
)

const ProductNameMaxLength = 100

// Order is the external representation of a stored order
type Order struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// OrderCreate is the input of the create-order operation. Whether UserID
// refers to an existing user is not checked here.
type OrderCreate struct {
	UserID      int64  `json:"user_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type orderCreatePayload struct {
	UserID      *int64  `json:"user_id"`
	ProductName *string `json:"product_name"`
	Quantity    *int    `json:"quantity"`
}

// DecodeOrderCreate reads a JSON create-order body
func DecodeOrderCreate(r io.Reader) (OrderCreate, error) {
	var p orderCreatePayload
	if err := decodeJSON(r, &p); err != nil {
		return OrderCreate{}, err
	}

	var errs ValidationErrors
	errs = required(errs, "user_id", p.UserID == nil)
	errs = required(errs, "product_name", p.ProductName == nil)
	errs = required(errs, "quantity", p.Quantity == nil)
	if len(errs) > 0 {
		return OrderCreate{}, errs
	}

	return OrderCreate{UserID: *p.UserID, ProductName: *p.ProductName, Quantity: *p.Quantity}, nil
}

// Validate runs every order rule and returns all violations
func (o OrderCreate) Validate() error {
	var errs ValidationErrors

	if o.ProductName == "" {
		errs = append(errs, ValidationError{Field: "product_name", Message: MsgProductNameRequired})
	}
	if utf8.RuneCountInString(o.ProductName) > ProductNameMaxLength {
		errs = append(errs, ValidationError{Field: "product_name", Message: MsgProductNameTooLong})
	}
	if o.Quantity <= 0 {
		errs = append(errs, ValidationError{Field: "quantity", Message: MsgQuantityNotPositive})
	}

	return errs.orNil()
}
