package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/userorders/internal/service"
	"github.com/dshills/userorders/internal/storage"
	"github.com/dshills/userorders/pkg/types"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewServer(service.New(store, service.Config{MaxLimit: service.DefaultMaxLimit}, nil), nil)
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeResult[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &v))
	return v
}

func requireMCPError(t *testing.T, err error, code int) *MCPError {
	t.Helper()
	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr), "expected MCPError, got %v", err)
	assert.Equal(t, code, mcpErr.Code)
	return mcpErr
}

func createUser(t *testing.T, s *Server, username string) types.User {
	t.Helper()
	result, err := s.handleCreateUser(context.Background(), callRequest("create_user", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"age":      float64(30),
	}))
	require.NoError(t, err)
	return decodeResult[types.User](t, result)
}

func TestCreateUser(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	user := createUser(t, s, "johndoe")
	assert.Positive(t, user.ID)
	assert.Equal(t, "johndoe@example.com", user.Email)

	t.Run("Duplicate", func(t *testing.T) {
		_, err := s.handleCreateUser(ctx, callRequest("create_user", map[string]interface{}{
			"username": "johndoe",
			"email":    "other@example.com",
			"age":      float64(30),
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeConflict)
		assert.Contains(t, mcpErr.Message, "duplicate")
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := s.handleCreateUser(ctx, callRequest("create_user", map[string]interface{}{
			"username": "jo",
			"email":    "jo@example.com",
			"age":      float64(30),
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeInvalidParams)
		assert.Contains(t, mcpErr.Message, types.MsgUsernameTooShort)
	})

	t.Run("MissingParam", func(t *testing.T) {
		_, err := s.handleCreateUser(ctx, callRequest("create_user", map[string]interface{}{
			"username": "janedoe",
			"email":    "jane@example.com",
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeInvalidParams)
		assert.Equal(t, "age parameter is required", mcpErr.Message)
	})

	t.Run("FractionalAge", func(t *testing.T) {
		_, err := s.handleCreateUser(ctx, callRequest("create_user", map[string]interface{}{
			"username": "janedoe",
			"email":    "jane@example.com",
			"age":      30.5,
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestGetUser(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()
	user := createUser(t, s, "alice")

	result, err := s.handleGetUser(ctx, callRequest("get_user", map[string]interface{}{"user_id": float64(user.ID)}))
	require.NoError(t, err)
	assert.Equal(t, user, decodeResult[types.User](t, result))

	_, err = s.handleGetUser(ctx, callRequest("get_user", map[string]interface{}{"user_id": float64(9999)}))
	requireMCPError(t, err, ErrorCodeNotFound)

	_, err = s.handleGetUser(ctx, callRequest("get_user", map[string]interface{}{"user_id": "1"}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestOrderTools(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()
	user := createUser(t, s, "buyer")

	result, err := s.handleCreateOrder(ctx, callRequest("create_order", map[string]interface{}{
		"user_id":      float64(user.ID),
		"product_name": "Test Product",
		"quantity":     float64(2),
	}))
	require.NoError(t, err)
	order := decodeResult[types.Order](t, result)
	assert.Equal(t, user.ID, order.UserID)

	result, err = s.handleGetOrder(ctx, callRequest("get_order", map[string]interface{}{"order_id": float64(order.ID)}))
	require.NoError(t, err)
	assert.Equal(t, order, decodeResult[types.Order](t, result))

	result, err = s.handleGetOrderUser(ctx, callRequest("get_order_user", map[string]interface{}{"order_id": float64(order.ID)}))
	require.NoError(t, err)
	assert.Equal(t, user, decodeResult[types.User](t, result))

	result, err = s.handleGetUserOrders(ctx, callRequest("get_user_orders", map[string]interface{}{"user_id": float64(user.ID)}))
	require.NoError(t, err)
	assert.Equal(t, []types.Order{order}, decodeResult[[]types.Order](t, result))

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := s.handleCreateOrder(ctx, callRequest("create_order", map[string]interface{}{
			"user_id":      float64(9999),
			"product_name": "X",
			"quantity":     float64(1),
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeNotFound)
		assert.Equal(t, "user not found", mcpErr.Message)
	})

	t.Run("BadQuantity", func(t *testing.T) {
		_, err := s.handleCreateOrder(ctx, callRequest("create_order", map[string]interface{}{
			"user_id":      float64(9999),
			"product_name": "X",
			"quantity":     float64(0),
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestListTools(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	result, err := s.handleListUsers(ctx, callRequest("list_users", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, resultText(t, result))

	for _, name := range []string{"user_a", "user_b", "user_c"} {
		createUser(t, s, name)
	}

	result, err = s.handleListUsers(ctx, callRequest("list_users", map[string]interface{}{
		"skip":  float64(1),
		"limit": float64(1),
	}))
	require.NoError(t, err)
	users := decodeResult[[]types.User](t, result)
	require.Len(t, users, 1)
	assert.Equal(t, "user_b", users[0].Username)

	_, err = s.handleListOrders(ctx, callRequest("list_orders", map[string]interface{}{"skip": float64(-1)}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestGetStatus(t *testing.T) {
	s := setupServer(t)
	createUser(t, s, "status_user")

	result, err := s.handleGetStatus(context.Background(), callRequest("get_status", nil))
	require.NoError(t, err)

	status := decodeResult[map[string]interface{}](t, result)
	assert.Equal(t, true, status["healthy"])
	assert.Equal(t, storage.CurrentSchemaVersion, status["schema_version"])
	stats := status["statistics"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["users_count"])
}

func TestArguments_WrongShape(t *testing.T) {
	_, err := arguments(mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: []string{"x"}}})
	requireMCPError(t, err, ErrorCodeInvalidParams)
}
