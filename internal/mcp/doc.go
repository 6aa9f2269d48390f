// Package mcp exposes the users/orders service as Model Context Protocol
// (MCP) tools, so AI assistants can create and query users and orders.
//
// Tools:
//   - create_user: Create a user (username, email, age)
//   - get_user: Fetch one user by id
//   - list_users: List users with skip/limit
//   - get_user_orders: List every order of one user
//   - create_order: Create an order for an existing user
//   - get_order: Fetch one order by id
//   - get_order_user: Fetch the user who placed an order
//   - list_orders: List orders with skip/limit
//   - get_status: Storage health, row counts and schema version
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server is started by the userorders-mcp command and reads requests
// from stdin until the context is cancelled or stdin is closed.
//
// # Tool: create_user
//
//	Request:
//	{
//	  "name": "create_user",
//	  "arguments": {"username": "johndoe", "email": "john@example.com", "age": 30}
//	}
//
//	Response (text content):
//	{"id": 1, "username": "johndoe", "email": "john@example.com", "age": 30}
//
// # Tool: create_order
//
//	Request:
//	{
//	  "name": "create_order",
//	  "arguments": {"user_id": 1, "product_name": "Test Product", "quantity": 2}
//	}
//
//	Response (text content):
//	{"id": 1, "user_id": 1, "product_name": "Test Product", "quantity": 2}
//
// # Error Handling
//
// Tool failures are returned as MCPError values:
//
//	-32602  Invalid params: missing or mistyped argument, or a failed
//	        validation rule (all violated rules are listed in Data)
//	-32001  Not found: the referenced user or order does not exist
//	-32002  Conflict: username or email already taken
//	-32603  Internal error: storage failure; details are logged only
//
// Arguments arrive as decoded JSON, so integers are float64 values; a
// fractional value for an integer argument is rejected.
package mcp
