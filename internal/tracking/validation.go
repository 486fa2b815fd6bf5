package tracking

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// maxGroupNameLength matches the groups.name CHECK constraint.
const maxGroupNameLength = 50

// ValidateGroupName checks a group name before persistence.
func ValidateGroupName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "group name cannot be empty"}
	}
	if utf8.RuneCountInString(name) > maxGroupNameLength {
		return &ValidationError{Field: "name", Message: "group name exceeds 50 characters"}
	}
	return nil
}

// ValidateCoordinates rejects values that cannot be stored or serialised.
// Any finite float is accepted; there is no range check.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return &ValidationError{Field: "latitude", Message: "latitude must be a finite number"}
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return &ValidationError{Field: "longitude", Message: "longitude must be a finite number"}
	}
	return nil
}

// ParseRangeQuery validates raw query parameters in two stages.
//
// First all three values must be present and group_id must be a non-zero
// integer (surrounding whitespace ignored), otherwise the error carries
// MsgMissingParameters. Then both dates
// must match YYYY-MM-DD, otherwise MsgInvalidDateFormat.
//
// Both bounds are midnight UTC of their day. The end bound is NOT extended
// to the end of the day.
func ParseRangeQuery(groupID, startDate, endDate string) (RangeQuery, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(groupID), 10, 64)
	if err != nil || id == 0 || startDate == "" || endDate == "" {
		return RangeQuery{}, &ValidationError{Field: "query", Message: MsgMissingParameters}
	}

	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return RangeQuery{}, &ValidationError{Field: "start_date", Message: MsgInvalidDateFormat}
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return RangeQuery{}, &ValidationError{Field: "end_date", Message: MsgInvalidDateFormat}
	}

	return RangeQuery{GroupID: id, Start: start, End: end}, nil
}
