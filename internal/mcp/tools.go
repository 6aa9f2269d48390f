package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/userorders/internal/service"
	"github.com/dshills/userorders/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeNotFound      = -32001 // Referenced user or order does not exist
	ErrorCodeConflict      = -32002 // Username or email already taken
)

// Users

// handleCreateUser handles the create_user tool invocation
func (s *Server) handleCreateUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	username, err := requireString(args, "username")
	if err != nil {
		return nil, err
	}
	email, err := requireString(args, "email")
	if err != nil {
		return nil, err
	}
	age, err := requireInt(args, "age")
	if err != nil {
		return nil, err
	}

	user, err := s.service.CreateUser(ctx, types.UserCreate{Username: username, Email: email, Age: int(age)})
	if err != nil {
		return nil, s.toolError("create_user", err)
	}
	return mcp.NewToolResultText(formatJSON(user)), nil
}

// handleGetUser handles the get_user tool invocation
func (s *Server) handleGetUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	userID, err := requireInt(args, "user_id")
	if err != nil {
		return nil, err
	}

	user, err := s.service.GetUser(ctx, userID)
	if err != nil {
		return nil, s.toolError("get_user", err)
	}
	return mcp.NewToolResultText(formatJSON(user)), nil
}

// handleListUsers handles the list_users tool invocation
func (s *Server) handleListUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := pageArgs(request)
	if err != nil {
		return nil, err
	}

	users, err := s.service.ListUsers(ctx, page)
	if err != nil {
		return nil, s.toolError("list_users", err)
	}
	return mcp.NewToolResultText(formatJSON(users)), nil
}

// handleGetUserOrders handles the get_user_orders tool invocation
func (s *Server) handleGetUserOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	userID, err := requireInt(args, "user_id")
	if err != nil {
		return nil, err
	}

	orders, err := s.service.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, s.toolError("get_user_orders", err)
	}
	return mcp.NewToolResultText(formatJSON(orders)), nil
}

// Orders

// handleCreateOrder handles the create_order tool invocation
func (s *Server) handleCreateOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	userID, err := requireInt(args, "user_id")
	if err != nil {
		return nil, err
	}
	productName, err := requireString(args, "product_name")
	if err != nil {
		return nil, err
	}
	quantity, err := requireInt(args, "quantity")
	if err != nil {
		return nil, err
	}

	order, err := s.service.CreateOrder(ctx, types.OrderCreate{
		UserID:      userID,
		ProductName: productName,
		Quantity:    int(quantity),
	})
	if err != nil {
		return nil, s.toolError("create_order", err)
	}
	return mcp.NewToolResultText(formatJSON(order)), nil
}

// handleGetOrder handles the get_order tool invocation
func (s *Server) handleGetOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	orderID, err := requireInt(args, "order_id")
	if err != nil {
		return nil, err
	}

	order, err := s.service.GetOrder(ctx, orderID)
	if err != nil {
		return nil, s.toolError("get_order", err)
	}
	return mcp.NewToolResultText(formatJSON(order)), nil
}

// handleGetOrderUser handles the get_order_user tool invocation
func (s *Server) handleGetOrderUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	orderID, err := requireInt(args, "order_id")
	if err != nil {
		return nil, err
	}

	user, err := s.service.GetOrderOwner(ctx, orderID)
	if err != nil {
		return nil, s.toolError("get_order_user", err)
	}
	return mcp.NewToolResultText(formatJSON(user)), nil
}

// handleListOrders handles the list_orders tool invocation
func (s *Server) handleListOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := pageArgs(request)
	if err != nil {
		return nil, err
	}

	orders, err := s.service.ListOrders(ctx, page)
	if err != nil {
		return nil, s.toolError("list_orders", err)
	}
	return mcp.NewToolResultText(formatJSON(orders)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.service.Status(ctx)
	if err != nil {
		return nil, s.toolError("get_status", err)
	}

	response := map[string]interface{}{
		"healthy":        true,
		"schema_version": stats.SchemaVersion,
		"build_mode":     stats.BuildMode,
		"statistics": map[string]interface{}{
			"users_count":  stats.Users,
			"orders_count": stats.Orders,
		},
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// toolError maps service failures onto MCP error codes
func (s *Server) toolError(tool string, err error) error {
	var verrs types.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return newMCPError(ErrorCodeInvalidParams, verrs.Error(), map[string]interface{}{
			"errors": []types.ValidationError(verrs),
		})
	case errors.Is(err, service.ErrNotFound):
		return newMCPError(ErrorCodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrConstraintViolation):
		return newMCPError(ErrorCodeConflict, err.Error(), nil)
	default:
		s.logger.Error("tool failed", "tool", tool, "error", err)
		return newMCPError(ErrorCodeInternalError, "internal error", nil)
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// arguments returns the argument object of a tool call. A call without
// arguments is treated as an empty object.
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

func requireString(args map[string]interface{}, key string) (string, error) {
	val, present := args[key]
	if !present {
		return "", missingParam(key)
	}
	s, ok := val.(string)
	if !ok {
		return "", invalidParam(key, val, "must be a string")
	}
	return s, nil
}

// requireInt accepts JSON numbers that hold an integral value
func requireInt(args map[string]interface{}, key string) (int64, error) {
	val, present := args[key]
	if !present {
		return 0, missingParam(key)
	}
	n, ok := toInt(val)
	if !ok {
		return 0, invalidParam(key, val, "must be an integer")
	}
	return n, nil
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) (int, error) {
	val, present := args[key]
	if !present || val == nil {
		return defaultValue, nil
	}
	n, ok := toInt(val)
	if !ok {
		return 0, invalidParam(key, val, "must be an integer")
	}
	return int(n), nil
}

func toInt(val interface{}) (int64, bool) {
	switch v := val.(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func pageArgs(request mcp.CallToolRequest) (types.Page, error) {
	args, err := arguments(request)
	if err != nil {
		return types.Page{}, err
	}
	skip, err := getIntDefault(args, "skip", types.DefaultSkip)
	if err != nil {
		return types.Page{}, err
	}
	limit, err := getIntDefault(args, "limit", types.DefaultLimit)
	if err != nil {
		return types.Page{}, err
	}
	return types.Page{Skip: skip, Limit: limit}, nil
}

func missingParam(key string) error {
	return newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
		"param":  key,
		"reason": "missing",
	})
}

func invalidParam(key string, val interface{}, reason string) error {
	return newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("%s %s", key, reason), map[string]interface{}{
		"param":  key,
		"value":  val,
		"reason": reason,
	})
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}
