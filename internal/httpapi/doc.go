// Package httpapi exposes the users/orders service over HTTP/JSON.
//
// Routes:
//
//	POST /users                create a user (201)
//	GET  /users?skip=&limit=   list users in insertion order
//	GET  /users/{id}           fetch one user
//	GET  /users/{id}/orders    orders of one user
//	POST /orders               create an order (201)
//	GET  /orders?skip=&limit=  list orders in insertion order
//	GET  /orders/{id}          fetch one order
//	GET  /orders/{id}/user     owner of one order
//	GET  /                     service name, version and status
//	GET  /healthz              storage reachability and row counts
//	GET  /metrics              Prometheus metrics
//
// Every error body has the form {"detail": "..."}. Status codes:
//
//	422  validation failure (body shape, field rules, skip/limit, path id)
//	404  user or order does not exist
//	400  duplicate username or email
//	413  request body over the configured cap
//	429  client exceeded its rate limit
//	500  anything else; the cause is logged, never returned
//
// Middleware, outermost first: request id, access log, metrics, rate limit,
// body limit.
package httpapi
