package mqtt

import (
	"encoding/json"
	"fmt"
	"time"
)

// maxPayloadSize caps a single message at 1MB, a common broker limit.
const maxPayloadSize = 1 << 20

// timestampLayout matches the HTTP API's timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// LocationMessage is the JSON body published for each recorded location.
type LocationMessage struct {
	GroupID   int64   `json:"group_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

// NewLocationMessage builds the message for a reading. ts is rendered as
// naive UTC with second precision.
func NewLocationMessage(groupID int64, lat, lon float64, ts time.Time) LocationMessage {
	return LocationMessage{
		GroupID:   groupID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: ts.UTC().Format(timestampLayout),
	}
}

// PublishLocation publishes a reading to the group's location topic with the
// configured QoS. Messages are not retained: they are events, not state.
func (c *Client) PublishLocation(groupID int64, lat, lon float64, ts time.Time) error {
	payload, err := json.Marshal(NewLocationMessage(groupID, lat, lon, ts))
	if err != nil {
		return fmt.Errorf("%w: encoding location: %w", ErrPublishFailed, err)
	}
	return c.Publish(Topics{}.GroupLocation(groupID), payload, c.qos(), false)
}

// Publish sends a message to the specified MQTT topic.
//
// Parameters:
//   - topic: The topic to publish to
//   - payload: The message payload (max 1MB)
//   - qos: Quality of Service level (0, 1, or 2)
//   - retained: Whether the broker keeps the message for new subscribers
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
