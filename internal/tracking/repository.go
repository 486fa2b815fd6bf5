package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Repository defines persistence operations for groups and locations.
type Repository interface {
	CreateGroup(ctx context.Context, name string) (*Group, error)
	GetGroup(ctx context.Context, id int64) (*Group, error)
	ListGroups(ctx context.Context) ([]Group, error)
	CountGroups(ctx context.Context) (int, error)

	CreateLocation(ctx context.Context, groupID int64, lat, lon float64, ts time.Time) (*Location, error)
	QueryLocations(ctx context.Context, groupID int64, start, end time.Time) ([]Location, error)
	CountLocations(ctx context.Context) (int, error)
}

// querier is the subset of *sql.DB and *sql.Tx the repository needs.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db querier
}

// NewSQLiteRepository creates a new SQLite-backed tracking repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// WithTx returns a repository whose statements run inside tx.
func (r *SQLiteRepository) WithTx(tx *sql.Tx) *SQLiteRepository {
	return &SQLiteRepository{db: tx}
}

// CreateGroup inserts a new group and returns it with its assigned ID.
func (r *SQLiteRepository) CreateGroup(ctx context.Context, name string) (*Group, error) {
	if err := ValidateGroupName(name); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	res, err := r.db.ExecContext(ctx, `INSERT INTO groups (name) VALUES (?)`, name)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintUnique) {
			return nil, fmt.Errorf("inserting group %q: %w", name, ErrGroupNameConflict)
		}
		return nil, fmt.Errorf("inserting group %q: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading group id: %w", err)
	}
	return &Group{ID: id, Name: name}, nil
}

// GetGroup returns a single group by ID.
func (r *SQLiteRepository) GetGroup(ctx context.Context, id int64) (*Group, error) {
	var g Group
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM groups WHERE id = ?`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("querying group %d: %w", id, err)
	}
	return &g, nil
}

// ListGroups returns all groups ordered by ID.
func (r *SQLiteRepository) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	groups := make([]Group, 0)
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}
	return groups, nil
}

// CountGroups returns the number of stored groups.
func (r *SQLiteRepository) CountGroups(ctx context.Context) (int, error) {
	return r.count(ctx, "groups")
}

// CreateLocation inserts a reading for an existing group.
//
// The timestamp is required; callers wanting "now" go through Recorder.
// Returns ErrGroupNotFound when groupID references no group.
func (r *SQLiteRepository) CreateLocation(ctx context.Context, groupID int64, lat, lon float64, ts time.Time) (*Location, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	if ts.IsZero() {
		return nil, &ValidationError{Field: "timestamp", Message: "timestamp is required"}
	}
	ts = ts.UTC()

	const query = `INSERT INTO locations (group_id, latitude, longitude, timestamp)
		VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, groupID, lat, lon, formatTimestamp(ts))
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return nil, fmt.Errorf("inserting location for group %d: %w", groupID, ErrGroupNotFound)
		}
		return nil, fmt.Errorf("inserting location for group %d: %w", groupID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading location id: %w", err)
	}
	return &Location{
		ID:        id,
		GroupID:   groupID,
		Latitude:  lat,
		Longitude: lon,
		// Round-trip through storage precision so the caller sees what was persisted.
		Timestamp: ts.Truncate(time.Microsecond),
	}, nil
}

// QueryLocations returns the readings of a group with start <= timestamp <= end,
// ascending by timestamp. An unknown group yields an empty slice.
func (r *SQLiteRepository) QueryLocations(ctx context.Context, groupID int64, start, end time.Time) ([]Location, error) {
	const query = `SELECT id, group_id, latitude, longitude, timestamp
		FROM locations
		WHERE group_id = ? AND timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp, id`

	rows, err := r.db.QueryContext(ctx, query, groupID, formatTimestamp(start), formatTimestamp(end))
	if err != nil {
		return nil, fmt.Errorf("querying locations for group %d: %w", groupID, err)
	}
	defer rows.Close()

	locations := make([]Location, 0)
	for rows.Next() {
		loc, err := scanLocationRow(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}
	return locations, nil
}

// CountLocations returns the number of stored readings across all groups.
func (r *SQLiteRepository) CountLocations(ctx context.Context) (int, error) {
	return r.count(ctx, "locations")
}

// count returns the row count of a table. table is never user input.
func (r *SQLiteRepository) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil { //nolint:gosec // table is a package constant
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// scanLocationRow scans a location from a Rows cursor.
func scanLocationRow(rows *sql.Rows) (*Location, error) {
	var loc Location
	var ts string
	if err := rows.Scan(&loc.ID, &loc.GroupID, &loc.Latitude, &loc.Longitude, &ts); err != nil {
		return nil, fmt.Errorf("scanning location: %w", err)
	}
	parsed, err := parseTimestamp(ts)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp of location %d: %w", loc.ID, err)
	}
	loc.Timestamp = parsed
	return &loc, nil
}

// isConstraint reports whether err is a SQLite constraint violation of the given kind.
func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == code
}
