package main

import (
	"context"
	"time"

	"github.com/nerrad567/grouptrail/internal/tracking"
)

// locationWriter is satisfied by *influxdb.Client.
type locationWriter interface {
	WriteLocation(groupID int64, lat, lon float64, ts time.Time) error
}

// locationPublisher is satisfied by *mqtt.Client.
type locationPublisher interface {
	PublishLocation(groupID int64, lat, lon float64, ts time.Time) error
}

// influxSink mirrors recorded locations into InfluxDB.
type influxSink struct {
	w locationWriter
}

func (influxSink) Name() string { return "influxdb" }

func (s influxSink) Deliver(_ context.Context, loc tracking.Location) error {
	return s.w.WriteLocation(loc.GroupID, loc.Latitude, loc.Longitude, loc.Timestamp)
}

// mqttSink publishes recorded locations as MQTT events.
type mqttSink struct {
	p locationPublisher
}

func (mqttSink) Name() string { return "mqtt" }

func (s mqttSink) Deliver(_ context.Context, loc tracking.Location) error {
	return s.p.PublishLocation(loc.GroupID, loc.Latitude, loc.Longitude, loc.Timestamp)
}
