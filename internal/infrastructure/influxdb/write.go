package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// LocationMeasurement is the measurement every location point is written to.
const LocationMeasurement = "group_location"

// WriteLocation queues one location reading for the configured bucket.
//
// The point is tagged with the group ID so per-group series stay cheap to
// query; latitude and longitude are fields. The write is non-blocking.
//
// Returns ErrNotConnected when the client has been closed.
func (c *Client) WriteLocation(groupID int64, lat, lon float64, ts time.Time) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	c.writeAPI.WritePoint(locationPoint(groupID, lat, lon, ts))
	return nil
}

// locationPoint builds the line-protocol point for a reading.
func locationPoint(groupID int64, lat, lon float64, ts time.Time) *write.Point {
	return write.NewPoint(
		LocationMeasurement,
		map[string]string{
			"group_id": strconv.FormatInt(groupID, 10),
		},
		map[string]interface{}{
			"latitude":  lat,
			"longitude": lon,
		},
		ts.UTC(),
	)
}
