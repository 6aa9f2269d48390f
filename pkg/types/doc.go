// Package types provides the request and response shapes of the users and
// orders API together with their validation rules.
//
// # Decode, then Validate
//
// Decoding and validation are two explicit steps. Decoding turns a JSON
// body into a typed struct and only fails on shape problems:
//
//	in, err := types.DecodeUserCreate(r.Body)   // bad JSON, wrong types, missing fields
//	if err != nil {
//	    return err
//	}
//	if err := in.Validate(); err != nil {     // domain rules
//	    return err
//	}
//
// Both steps report failures as ValidationErrors. Every rule runs
// independently, so one request can carry several violations:
//
//	err := types.UserCreate{Username: "j!", Email: "nope", Age: 100}.Validate()
//	// username too short; username has invalid characters; invalid email format; age out of range
//
// # Rules
//
// UserCreate:
//   - username: 3 to 50 characters from [a-zA-Z0-9_]
//   - email: syntactically valid, at most 100 characters
//   - age: strictly between 0 and 100
//
// OrderCreate:
//   - product_name: 1 to 100 characters
//   - quantity: greater than 0
//   - user_id: presence and type only; existence is checked by the service
//
// Validation never consults stored state. Uniqueness of username and email
// and existence of the referenced user are enforced further down.
package types
