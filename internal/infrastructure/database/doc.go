// Package database provides SQLite connectivity for GroupTrail.
//
// This package manages:
//   - The connection, with foreign keys enforced and optional WAL mode
//   - Versioned schema migrations embedded into the binary
//   - Connection pool lifecycle and health checks
//
// All queries elsewhere in the codebase use parameterised statements.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migrations are additive: new columns must be nullable or carry a default,
// and every .up.sql file ships with a matching .down.sql.
package database
