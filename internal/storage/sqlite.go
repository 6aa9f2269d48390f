package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a write violates a unique constraint
	ErrAlreadyExists = errors.New("already exists")
	// ErrForeignKey is returned when a write references a missing parent row
	ErrForeignKey = errors.New("foreign key constraint failed")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	// Foreign keys are switched on through the DSN so that every
	// connection the pool opens enforces them.
	db, err := sql.Open(DriverName, dataSourceName(dbPath))
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer. Requests queue on the pool and
	// hold the connection for the lifetime of their transaction.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to read foreign_keys pragma: %w", err)
	}
	if fk != 1 {
		_ = db.Close()
		return nil, errors.New("foreign key enforcement is disabled")
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &sqliteTx{tx: tx}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

// Rollback is safe to defer after Commit; sql.ErrTxDone is swallowed.
func (t *sqliteTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// classify maps driver constraint failures onto the package sentinels
func classify(err error) error {
	switch constraintOf(err) {
	case constraintUnique:
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	case constraintForeignKey:
		return fmt.Errorf("%w: %v", ErrForeignKey, err)
	default:
		return err
	}
}

// User operations

func createUser(ctx context.Context, q querier, user *User) error {
	query := `
		INSERT INTO users (username, email, age)
		VALUES (?, ?, ?)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query, user.Username, user.Email, user.Age).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", classify(err))
	}
	return nil
}

func getUser(ctx context.Context, q querier, userID int64) (*User, error) {
	query := `
		SELECT id, username, email, age
		FROM users
		WHERE id = ?
	`
	var user User
	err := q.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.Age,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func listUsers(ctx context.Context, q querier, skip, limit int) ([]*User, error) {
	query := `
		SELECT id, username, email, age
		FROM users
		ORDER BY id
		LIMIT ? OFFSET ?
	`
	rows, err := q.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Age); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Order operations

func createOrder(ctx context.Context, q querier, order *Order) error {
	query := `
		INSERT INTO orders (user_id, product_name, quantity)
		VALUES (?, ?, ?)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query, order.UserID, order.ProductName, order.Quantity).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", classify(err))
	}
	return nil
}

func getOrder(ctx context.Context, q querier, orderID int64) (*Order, error) {
	query := `
		SELECT id, user_id, product_name, quantity
		FROM orders
		WHERE id = ?
	`
	var order Order
	err := q.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID, &order.UserID, &order.ProductName, &order.Quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func listOrders(ctx context.Context, q querier, skip, limit int) ([]*Order, error) {
	query := `
		SELECT id, user_id, product_name, quantity
		FROM orders
		ORDER BY id
		LIMIT ? OFFSET ?
	`
	rows, err := q.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return scanOrders(rows)
}

func listOrdersByUser(ctx context.Context, q querier, userID int64) ([]*Order, error) {
	query := `
		SELECT id, user_id, product_name, quantity
		FROM orders
		WHERE user_id = ?
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]*Order, error) {
	defer func() { _ = rows.Close() }()

	orders := make([]*Order, 0)
	for rows.Next() {
		var order Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.ProductName, &order.Quantity); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

// Stats returns row counts for the health endpoint
func (s *SQLiteStorage) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{BuildMode: BuildMode}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&stats.Users); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&stats.Orders); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	version, err := currentVersion(ctx, s.db)
	if err != nil {
		return nil, err
	}
	stats.SchemaVersion = version.String()

	return stats, nil
}

// Database-level operations run outside an explicit transaction

func (s *SQLiteStorage) CreateUser(ctx context.Context, user *User) error {
	return createUser(ctx, s.db, user)
}

func (s *SQLiteStorage) GetUser(ctx context.Context, userID int64) (*User, error) {
	return getUser(ctx, s.db, userID)
}

func (s *SQLiteStorage) ListUsers(ctx context.Context, skip, limit int) ([]*User, error) {
	return listUsers(ctx, s.db, skip, limit)
}

func (s *SQLiteStorage) CreateOrder(ctx context.Context, order *Order) error {
	return createOrder(ctx, s.db, order)
}

func (s *SQLiteStorage) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	return getOrder(ctx, s.db, orderID)
}

func (s *SQLiteStorage) ListOrders(ctx context.Context, skip, limit int) ([]*Order, error) {
	return listOrders(ctx, s.db, skip, limit)
}

func (s *SQLiteStorage) ListOrdersByUser(ctx context.Context, userID int64) ([]*Order, error) {
	return listOrdersByUser(ctx, s.db, userID)
}

// Transaction implementations. Every call goes through the tx querier;
// touching s.db here would deadlock on the single-connection pool.

func (t *sqliteTx) CreateUser(ctx context.Context, user *User) error {
	return createUser(ctx, t.tx, user)
}

func (t *sqliteTx) GetUser(ctx context.Context, userID int64) (*User, error) {
	return getUser(ctx, t.tx, userID)
}

func (t *sqliteTx) ListUsers(ctx context.Context, skip, limit int) ([]*User, error) {
	return listUsers(ctx, t.tx, skip, limit)
}

func (t *sqliteTx) CreateOrder(ctx context.Context, order *Order) error {
	return createOrder(ctx, t.tx, order)
}

func (t *sqliteTx) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	return getOrder(ctx, t.tx, orderID)
}

func (t *sqliteTx) ListOrders(ctx context.Context, skip, limit int) ([]*Order, error) {
	return listOrders(ctx, t.tx, skip, limit)
}

func (t *sqliteTx) ListOrdersByUser(ctx context.Context, userID int64) ([]*Order, error) {
	return listOrdersByUser(ctx, t.tx, userID)
}
