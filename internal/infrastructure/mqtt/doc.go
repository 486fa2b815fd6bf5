// Package mqtt publishes GroupTrail location events to an MQTT broker.
//
// When enabled, every recorded location is published to
//
//	grouptrail/group/{group_id}/location
//
// as a small JSON document, so dashboards and other services can follow
// groups live without polling the HTTP API. The service also keeps a
// retained status on grouptrail/system/status: "online" after connecting,
// "offline" on graceful shutdown, and an "offline" Last Will the broker
// publishes if the process dies.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.PublishLocation(loc.GroupID, loc.Latitude, loc.Longitude, loc.Timestamp)
//
// The client reconnects automatically with backoff between the configured
// initial and maximum delays. Use TLS (broker.tls) outside local development.
package mqtt
