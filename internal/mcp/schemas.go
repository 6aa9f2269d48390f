package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/userorders/pkg/types"
)

func idProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     1,
	}
}

func pageProperties() map[string]interface{} {
	return map[string]interface{}{
		"skip": map[string]interface{}{
			"type":        "integer",
			"description": "Number of rows to skip",
			"default":     types.DefaultSkip,
			"minimum":     0,
		},
		"limit": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of rows to return",
			"default":     types.DefaultLimit,
			"minimum":     0,
		},
	}
}

// createUserTool returns the tool definition for create_user
func createUserTool() mcp.Tool {
	return mcp.Tool{
		Name:        "create_user",
		Description: "Create a user with a unique username and email",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "3-50 characters: letters, digits and underscore",
					"minLength":   types.UsernameMinLength,
					"maxLength":   types.UsernameMaxLength,
				},
				"email": map[string]interface{}{
					"type":        "string",
					"description": "Email address, at most 100 characters",
					"maxLength":   types.EmailMaxLength,
				},
				"age": map[string]interface{}{
					"type":             "integer",
					"description":      "Age in years, strictly between 0 and 100",
					"exclusiveMinimum": types.AgeMin,
					"exclusiveMaximum": types.AgeMax,
				},
			},
			Required: []string{"username", "email", "age"},
		},
	}
}

// getUserTool returns the tool definition for get_user
func getUserTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_user",
		Description: "Fetch one user by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": idProperty("User id"),
			},
			Required: []string{"user_id"},
		},
	}
}

// listUsersTool returns the tool definition for list_users
func listUsersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_users",
		Description: "List users in creation order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pageProperties(),
		},
	}
}

// getUserOrdersTool returns the tool definition for get_user_orders
func getUserOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_user_orders",
		Description: "List every order placed by one user",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": idProperty("User id"),
			},
			Required: []string{"user_id"},
		},
	}
}

// createOrderTool returns the tool definition for create_order
func createOrderTool() mcp.Tool {
	return mcp.Tool{
		Name:        "create_order",
		Description: "Create an order for an existing user",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": idProperty("Id of the ordering user"),
				"product_name": map[string]interface{}{
					"type":        "string",
					"description": "Product name, 1-100 characters",
					"minLength":   1,
					"maxLength":   types.ProductNameMaxLength,
				},
				"quantity": map[string]interface{}{
					"type":        "integer",
					"description": "Number of items, at least 1",
					"minimum":     1,
				},
			},
			Required: []string{"user_id", "product_name", "quantity"},
		},
	}
}

// getOrderTool returns the tool definition for get_order
func getOrderTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_order",
		Description: "Fetch one order by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"order_id": idProperty("Order id"),
			},
			Required: []string{"order_id"},
		},
	}
}

// getOrderUserTool returns the tool definition for get_order_user
func getOrderUserTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_order_user",
		Description: "Fetch the user who placed an order",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"order_id": idProperty("Order id"),
			},
			Required: []string{"order_id"},
		},
	}
}

// listOrdersTool returns the tool definition for list_orders
func listOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_orders",
		Description: "List orders of all users in creation order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pageProperties(),
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report storage health, row counts and schema version",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
