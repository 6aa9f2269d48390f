package storage

import (
	"context"
)

// Queries defines the user and order operations shared by the database
// handle and by a transaction.
type Queries interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, userID int64) (*User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*User, error)

	// Order operations
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	ListOrders(ctx context.Context, skip, limit int) ([]*Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]*Order, error)
}

// Storage defines the interface for persisting and querying users and orders
type Storage interface {
	Queries

	// Status operations
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (*Stats, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Queries
	Commit() error
	Rollback() error
}

// User is a row of the users table
type User struct {
	ID       int64
	Username string
	Email    string
	Age      int
}

// Order is a row of the orders table. UserID always references an
// existing users.id; the schema enforces it with a foreign key.
type Order struct {
	ID          int64
	UserID      int64
	ProductName string
	Quantity    int
}

// Stats contains row counts and schema information
type Stats struct {
	Users         int
	Orders        int
	SchemaVersion string
	BuildMode     string
}
