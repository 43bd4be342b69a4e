// Package sqlite provides a SQLite-based implementation of driven.MemoryStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Memory lives in two tables: a single-row memory table holding the self name
// and company aliases, and an ordered facts table.
//
// # Data Location
//
// The database is stored at <memory.dir>/memory.db.
//
// # Thread Safety
//
// All operations are thread-safe. Save replaces the stored state inside one
// transaction so a reader never observes a partial write.
package sqlite
