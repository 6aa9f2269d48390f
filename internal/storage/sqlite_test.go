package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	// Use in-memory database for testing
	storage, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NotNil(t, storage)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func createTestUser(t *testing.T, s *SQLiteStorage, username string) *User {
	t.Helper()
	user := &User{
		Username: username,
		Email:    username + "@example.com",
		Age:      30,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestNewSQLiteStorage(t *testing.T) {
	storage := setupTestDB(t)

	assert.NotNil(t, storage.db)
	assert.NoError(t, storage.Ping(context.Background()))
}

func TestForeignKeysEnabled(t *testing.T) {
	storage := setupTestDB(t)

	var fk int
	err := storage.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestCreateUser(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	user := &User{Username: "johndoe", Email: "john@example.com", Age: 30}
	err := storage.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.Greater(t, user.ID, int64(0))

	retrieved, err := storage.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, retrieved)
}

func TestCreateUser_Duplicates(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"DuplicateUsername", "testuser", "different@example.com"},
		{"DuplicateEmail", "different_user", "test@example.com"},
		{"DuplicateBoth", "testuser", "test@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := setupTestDB(t)
			ctx := context.Background()

			original := &User{Username: "testuser", Email: "test@example.com", Age: 30}
			require.NoError(t, storage.CreateUser(ctx, original))

			duplicate := &User{Username: tt.username, Email: tt.email, Age: 25}
			err := storage.CreateUser(ctx, duplicate)
			assert.ErrorIs(t, err, ErrAlreadyExists)
			assert.Zero(t, duplicate.ID)

			// The first row is untouched
			retrieved, err := storage.GetUser(ctx, original.ID)
			require.NoError(t, err)
			assert.Equal(t, original, retrieved)

			users, err := storage.ListUsers(ctx, 0, 100)
			require.NoError(t, err)
			assert.Len(t, users, 1)
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	storage := setupTestDB(t)

	_, err := storage.GetUser(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers_Pagination(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createTestUser(t, storage, fmt.Sprintf("user_%d", i))
	}

	t.Run("AllRows", func(t *testing.T) {
		users, err := storage.ListUsers(ctx, 0, 100)
		require.NoError(t, err)
		require.Len(t, users, 5)
		for i, u := range users {
			assert.Equal(t, fmt.Sprintf("user_%d", i), u.Username)
		}
	})

	t.Run("SkipAndLimit", func(t *testing.T) {
		users, err := storage.ListUsers(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "user_1", users[0].Username)
		assert.Equal(t, "user_2", users[1].Username)
	})

	t.Run("SkipPastEnd", func(t *testing.T) {
		users, err := storage.ListUsers(ctx, 10, 100)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("ZeroLimit", func(t *testing.T) {
		users, err := storage.ListUsers(ctx, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestCreateOrder(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, storage, "testuser")

	order := &Order{UserID: user.ID, ProductName: "Test Product", Quantity: 3}
	err := storage.CreateOrder(ctx, order)
	require.NoError(t, err)
	assert.Greater(t, order.ID, int64(0))

	retrieved, err := storage.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, retrieved)
}

func TestCreateOrder_ForeignKeyViolation(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	order := &Order{UserID: 9999, ProductName: "Test Product", Quantity: 1}
	err := storage.CreateOrder(ctx, order)
	assert.ErrorIs(t, err, ErrForeignKey)

	orders, err := storage.ListOrders(ctx, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetOrder_NotFound(t *testing.T) {
	storage := setupTestDB(t)

	_, err := storage.GetOrder(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersByUser(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, storage, "alice")
	bob := createTestUser(t, storage, "bob")

	for i := 1; i <= 3; i++ {
		require.NoError(t, storage.CreateOrder(ctx, &Order{UserID: alice.ID, ProductName: fmt.Sprintf("item %d", i), Quantity: i}))
	}
	require.NoError(t, storage.CreateOrder(ctx, &Order{UserID: bob.ID, ProductName: "gadget", Quantity: 1}))

	orders, err := storage.ListOrdersByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i, o := range orders {
		assert.Equal(t, alice.ID, o.UserID)
		assert.Equal(t, i+1, o.Quantity)
	}

	none, err := storage.ListOrdersByUser(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := storage.ListOrders(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTransaction_Rollback(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	tx, err := storage.BeginTx(ctx)
	require.NoError(t, err)

	user := &User{Username: "ghost", Email: "ghost@example.com", Age: 40}
	require.NoError(t, tx.CreateUser(ctx, user))

	// Visible inside the transaction
	_, err = tx.GetUser(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, tx.Rollback())

	_, err = storage.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransaction_CommitThenRollback(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	tx, err := storage.BeginTx(ctx)
	require.NoError(t, err)

	user := &User{Username: "keeper", Email: "keeper@example.com", Age: 40}
	require.NoError(t, tx.CreateUser(ctx, user))
	require.NoError(t, tx.Commit())

	// Deferred rollback after commit is a no-op
	assert.NoError(t, tx.Rollback())

	retrieved, err := storage.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, retrieved)
}

func TestTransaction_ForeignKeyInsideTx(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	tx, err := storage.BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	err = tx.CreateOrder(ctx, &Order{UserID: 42, ProductName: "orphan", Quantity: 1})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestStats(t *testing.T) {
	storage := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, storage, "counter")
	require.NoError(t, storage.CreateOrder(ctx, &Order{UserID: user.ID, ProductName: "thing", Quantity: 2}))

	stats, err := storage.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, 1, stats.Orders)
	assert.Equal(t, CurrentSchemaVersion, stats.SchemaVersion)
	assert.Equal(t, BuildMode, stats.BuildMode)
}
