// Package store provides a SQLite-backed snapshot backend for the address book.
//
// A database holds one snapshot spread over three tables:
//   - snapshots: the snapshot id and format version (at most one row)
//   - contacts: one row per contact, position preserving book order
//   - phones: one row per phone, idx preserving phone order
//
// WriteSnapshot deletes and re-inserts every row in one transaction, so a
// failed write leaves the previous snapshot intact.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
