// Package storage provides SQLite-based persistence for users and orders.
//
// # Database Schema
//
// Tables:
//   - users: id, username (UNIQUE), email (UNIQUE), age
//   - orders: id, user_id (FOREIGN KEY -> users.id), product_name, quantity
//   - schema_version: applied migration versions
//
// Uniqueness and referential integrity are enforced by SQLite itself. A
// write that loses a race against another request is rejected at commit
// time and surfaces as ErrAlreadyExists or ErrForeignKey.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("userorders.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	user := &storage.User{Username: "johndoe", Email: "john@example.com", Age: 30}
//	if err := db.CreateUser(ctx, user); err != nil {
//	    return err
//	}
//
// # Transactions
//
// Use transactions to scope a request's work. Rollback is safe to defer
// after Commit:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	if _, err := tx.GetUser(ctx, order.UserID); err != nil {
//	    return err
//	}
//	if err := tx.CreateOrder(ctx, order); err != nil {
//	    return err
//	}
//	return tx.Commit()
//
// The pool holds a single connection, so a transaction owns the database
// until it commits or rolls back. Never call the *SQLiteStorage methods
// while holding a Tx from the same storage.
//
// # Build Tags
//
// Pure Go build (default):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build ./...
//
// CGO build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
package storage
