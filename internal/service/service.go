package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/userorders/internal/storage"
	"github.com/dshills/userorders/pkg/types"
)

// DefaultMaxLimit caps the limit of list operations
const DefaultMaxLimit = 1000

// Config contains configuration for the service
type Config struct {
	MaxLimit int // Upper bound for list limits; <= 0 disables the cap
}

// Service coordinates the request pipeline: validate -> transaction -> map errors
type Service struct {
	storage  storage.Storage
	logger   *slog.Logger
	maxLimit int
}

// New creates a service backed by store. A nil logger discards output.
func New(store storage.Storage, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		storage:  store,
		logger:   logger,
		maxLimit: cfg.MaxLimit,
	}
}

// withTx runs fn inside a transaction that is committed only when fn
// succeeds and rolled back on every other path.
func (s *Service) withTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.storage.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil {
			s.logger.Warn("rollback failed", "error", rerr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// User operations

// CreateUser validates in and inserts a new user
func (s *Service) CreateUser(ctx context.Context, in types.UserCreate) (*types.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	row := &storage.User{Username: in.Username, Email: in.Email, Age: in.Age}
	err := s.withTx(ctx, func(tx storage.Tx) error {
		return tx.CreateUser(ctx, row)
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return nil, ErrDuplicateUser
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user created", "user_id", row.ID)
	return toUser(row), nil
}

// GetUser returns the user with the given id
func (s *Service) GetUser(ctx context.Context, userID int64) (*types.User, error) {
	var row *storage.User
	err := s.withTx(ctx, func(tx storage.Tx) error {
		var err error
		row, err = tx.GetUser(ctx, userID)
		return err
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUser(row), nil
}

// ListUsers returns users in insertion order
func (s *Service) ListUsers(ctx context.Context, page types.Page) ([]types.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	page = page.Clamp(s.maxLimit)

	var rows []*storage.User
	err := s.withTx(ctx, func(tx storage.Tx) error {
		var err error
		rows, err = tx.ListUsers(ctx, page.Skip, page.Limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	users := make([]types.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *toUser(row))
	}
	return users, nil
}

// GetUserOrders returns every order of an existing user in insertion order
func (s *Service) GetUserOrders(ctx context.Context, userID int64) ([]types.Order, error) {
	var rows []*storage.Order
	err := s.withTx(ctx, func(tx storage.Tx) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			return err
		}
		var err error
		rows, err = tx.ListOrdersByUser(ctx, userID)
		return err
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// Order operations

// CreateOrder validates in, resolves the referenced user and inserts the
// order. The user lookup and the insert share one transaction; if the user
// vanishes in between, the foreign key rejects the insert and the result
// is the same ErrUserNotFound.
func (s *Service) CreateOrder(ctx context.Context, in types.OrderCreate) (*types.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	row := &storage.Order{UserID: in.UserID, ProductName: in.ProductName, Quantity: in.Quantity}
	err := s.withTx(ctx, func(tx storage.Tx) error {
		if _, err := tx.GetUser(ctx, in.UserID); err != nil {
			return err
		}
		return tx.CreateOrder(ctx, row)
	})
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrForeignKey) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("order created", "order_id", row.ID, "user_id", row.UserID)
	return toOrder(row), nil
}

// GetOrder returns the order with the given id
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*types.Order, error) {
	var row *storage.Order
	err := s.withTx(ctx, func(tx storage.Tx) error {
		var err error
		row, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return toOrder(row), nil
}

// GetOrderOwner returns the user an order belongs to
func (s *Service) GetOrderOwner(ctx context.Context, orderID int64) (*types.User, error) {
	var user *storage.User
	err := s.withTx(ctx, func(tx storage.Tx) error {
		order, err := tx.GetOrder(ctx, orderID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		user, err = tx.GetUser(ctx, order.UserID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return toUser(user), nil
}

// ListOrders returns orders of all users in insertion order
func (s *Service) ListOrders(ctx context.Context, page types.Page) ([]types.Order, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	page = page.Clamp(s.maxLimit)

	var rows []*storage.Order
	err := s.withTx(ctx, func(tx storage.Tx) error {
		var err error
		rows, err = tx.ListOrders(ctx, page.Skip, page.Limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// Status reports storage reachability and row counts
func (s *Service) Status(ctx context.Context) (*storage.Stats, error) {
	if err := s.storage.Ping(ctx); err != nil {
		return nil, fmt.Errorf("storage unreachable: %w", err)
	}
	return s.storage.Stats(ctx)
}

func toUser(row *storage.User) *types.User {
	return &types.User{
		ID:       row.ID,
		Username: row.Username,
		Email:    row.Email,
		Age:      row.Age,
	}
}

func toOrder(row *storage.Order) *types.Order {
	return &types.Order{
		ID:          row.ID,
		UserID:      row.UserID,
		ProductName: row.ProductName,
		Quantity:    row.Quantity,
	}
}

func toOrders(rows []*storage.Order) []types.Order {
	orders := make([]types.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, *toOrder(row))
	}
	return orders
}
