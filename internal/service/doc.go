// Package service implements the users and orders operations on top of
// storage.
//
// Every operation follows the same pipeline:
//
//  1. Validate the input (types.UserCreate, types.OrderCreate, types.Page)
//  2. Open one transaction for the whole call
//  3. Run the storage operations
//  4. Commit on success, roll back on every other path
//  5. Translate storage failures into service error kinds
//
// # Error Kinds
//
//   - types.ValidationErrors: input rejected before storage is touched
//   - ErrNotFound (ErrUserNotFound, ErrOrderNotFound): a referenced entity does not exist
//   - ErrConstraintViolation (ErrDuplicateUser): a unique constraint rejected the write
//
// Anything else is an unexpected storage failure. Callers check kinds with
// errors.Is and errors.As:
//
//	user, err := svc.CreateUser(ctx, in)
//	switch {
//	case errors.As(err, &verrs):
//	    // 422
//	case errors.Is(err, service.ErrConstraintViolation):
//	    // 400
//	}
//
// A constraint failure caused by a concurrent request is reported with the
// same kind as the equivalent validation-time condition: a duplicate insert
// that loses the race is ErrDuplicateUser, and an order whose user is gone
// by the time of the insert is ErrUserNotFound.
//
// Nothing is retried.
package service
