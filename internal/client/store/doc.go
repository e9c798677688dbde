// Package store persists the session record between runs of the client.
//
// The record is three keys in the local metadata table (see
// internal/common: TokenKey, UserKey, MustChangePasswordKey). Save and Clear
// touch all three keys inside one SQL transaction, so a reader never sees a
// token without its user or the other way round.
//
// Two implementations are provided:
//
//   - SQLiteStore  - durable, backed by modernc.org/sqlite and migrated
//     with goose (see Open).
//   - MemoryStore  - process-local, used when no store path is configured
//     and in tests.
package store
