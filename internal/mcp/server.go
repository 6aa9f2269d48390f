package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/userorders/internal/storage"
	"github.com/dshills/userorders/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "userorders-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Service is the subset of the service layer the tools call
type Service interface {
	CreateUser(ctx context.Context, in types.UserCreate) (*types.User, error)
	GetUser(ctx context.Context, userID int64) (*types.User, error)
	ListUsers(ctx context.Context, page types.Page) ([]types.User, error)
	GetUserOrders(ctx context.Context, userID int64) ([]types.Order, error)
	CreateOrder(ctx context.Context, in types.OrderCreate) (*types.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*types.Order, error)
	GetOrderOwner(ctx context.Context, orderID int64) (*types.User, error)
	ListOrders(ctx context.Context, page types.Page) ([]types.Order, error)
	Status(ctx context.Context) (*storage.Stats, error)
}

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	service Service
	logger  *slog.Logger
}

// NewServer creates an MCP server exposing svc as tools. A nil logger
// discards output.
func NewServer(svc Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		mcp:     mcpServer,
		service: svc,
		logger:  logger,
	}
	s.registerTools()
	return s
}

// Serve speaks MCP over in/out until ctx is cancelled or in is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Users
	s.mcp.AddTool(createUserTool(), s.handleCreateUser)
	s.mcp.AddTool(getUserTool(), s.handleGetUser)
	s.mcp.AddTool(listUsersTool(), s.handleListUsers)
	s.mcp.AddTool(getUserOrdersTool(), s.handleGetUserOrders)

	// Orders
	s.mcp.AddTool(createOrderTool(), s.handleCreateOrder)
	s.mcp.AddTool(getOrderTool(), s.handleGetOrder)
	s.mcp.AddTool(getOrderUserTool(), s.handleGetOrderUser)
	s.mcp.AddTool(listOrdersTool(), s.handleListOrders)

	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
