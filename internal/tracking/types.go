package tracking

import "time"

// Timestamp layouts.
const (
	// DateLayout is the accepted format for range query dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// DisplayLayout is the second-precision format used in API responses.
	DisplayLayout = "2006-01-02 15:04:05"

	// storageLayout is fixed width so lexical order equals time order.
	storageLayout = "2006-01-02 15:04:05.000000"
)

// Group is a named collection of location readings.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location is a single timestamped reading belonging to one group.
type Location struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// RangeQuery selects the readings of one group between two inclusive bounds.
type RangeQuery struct {
	GroupID int64
	Start   time.Time
	End     time.Time
}

// formatTimestamp renders t as naive UTC in the storage layout.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(storageLayout)
}

// parseTimestamp reads a stored timestamp back as a UTC time.
func parseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(storageLayout, s, time.UTC)
}
