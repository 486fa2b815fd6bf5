// Package influxdb mirrors GroupTrail location readings into InfluxDB.
//
// SQLite remains the source of truth. When enabled, every recorded location
// is also written as a point in the "group_location" measurement, tagged
// by group_id with latitude and longitude fields, so paths can be charted
// with Flux or Grafana without touching the primary store.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.SetOnError(func(err error) {
//	    logger.Warn("influxdb write failed", "error", err)
//	})
//	err = client.WriteLocation(1, 28.6139, 77.2090, time.Now())
//
// Writes are batched according to batch_size and flush_interval.
package influxdb
