// Package ledger provides an optional SQLite audit log of generate and
// validate runs.
//
// The ledger is append-only. Each run gets a UUIDv7 identifier and a
// monotonically increasing seq; listing is always ordered by seq so that
// history reads the same way regardless of wall-clock skew between hosts
// writing to a shared file.
//
// Neither the generator nor the validator reads the ledger back: a run's
// outcome never depends on previous runs.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package ledger
