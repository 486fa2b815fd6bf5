// Package tracking implements the GroupTrail storage model: named groups
// and the timestamped latitude/longitude readings that belong to them.
//
// # Storage
//
// Groups and locations live in two SQLite tables. Every location references
// an existing group (foreign keys are enforced by the connection) and is
// immutable once written. Timestamps are naive UTC values persisted as
// fixed-width text, so range filters are plain string comparisons:
//
//	2025-07-15 09:00:00.000000
//
// # Range queries
//
// QueryLocations returns the readings of one group whose timestamp lies in
// [start, end], ascending. Both bounds are literal instants: a range built by
// ParseRangeQuery ends at midnight of the end date, so a reading at 14:00
// on that date is excluded.
//
// # Write path
//
// The Recorder supplies the current time when the caller has none, persists
// the reading and then hands it to any configured Sinks (InfluxDB, MQTT).
// Sink failures are logged and never undo the write.
//
// # Usage
//
//	repo := tracking.NewSQLiteRepository(db.DB)
//	rec := tracking.NewRecorder(repo, logger, tracking.WithSinks(sinks...))
//
//	loc, err := rec.Record(ctx, groupID, 28.6139, 77.2090, nil)
//	points, err := repo.QueryLocations(ctx, groupID, start, end)
package tracking
