package mqtt

import "fmt"

// TopicPrefix is the root of every GroupTrail topic.
const TopicPrefix = "grouptrail"

// Topics builds GroupTrail MQTT topic names.
//
//	mqtt.Topics{}.GroupLocation(3) // "grouptrail/group/3/location"
type Topics struct{}

// GroupLocation is where each recorded location of a group is published.
func (Topics) GroupLocation(groupID int64) string {
	return fmt.Sprintf("%s/group/%d/location", TopicPrefix, groupID)
}

// AllGroupLocations matches the location topic of every group.
func (Topics) AllGroupLocations() string {
	return TopicPrefix + "/group/+/location"
}

// SystemStatus carries the retained online/offline status of the service.
func (Topics) SystemStatus() string {
	return TopicPrefix + "/system/status"
}
