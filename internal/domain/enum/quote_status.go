package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus int

const (
	QuoteStatusBuilding  QuoteStatus = 0
	QuoteStatusPending   QuoteStatus = 1
	QuoteStatusApproved  QuoteStatus = 2
	QuoteStatusRejected  QuoteStatus = 3
	QuoteStatusCompleted QuoteStatus = 4
)

func (s QuoteStatus) String() string {
	if !s.IsValid() {
		return "Unknown"
	}
	return [...]string{"Building", "Pending", "Approved", "Rejected", "Completed"}[s]
}

// IsValid reports whether s names one of the five lifecycle states
func (s QuoteStatus) IsValid() bool {
	return s >= QuoteStatusBuilding && s <= QuoteStatusCompleted
}

// IsAssignable reports whether s may be set directly through a status update.
// Building is entered at creation only and left only through finalization.
func (s QuoteStatus) IsAssignable() bool {
	return s.IsValid() && s != QuoteStatusBuilding
}

// CanTransitionTo is the transition guard table. Building moves only to
// Pending (finalization); the four post-building states reassign freely among
// themselves; nothing ever returns to Building.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if target == QuoteStatusBuilding {
		return false
	}
	if s == QuoteStatusBuilding {
		return target == QuoteStatusPending
	}
	return true
}

// ParseQuoteStatus maps a status name to its enum value
func ParseQuoteStatus(name string) (QuoteStatus, bool) {
	switch name {
	case "Building":
		return QuoteStatusBuilding, true
	case "Pending":
		return QuoteStatusPending, true
	case "Approved":
		return QuoteStatusApproved, true
	case "Rejected":
		return QuoteStatusRejected, true
	case "Completed":
		return QuoteStatusCompleted, true
	}
	return QuoteStatusBuilding, false
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	if parsed, ok := ParseQuoteStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusBuilding
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	case float64:
		*s = QuoteStatus(int(v))
	case []byte:
		i, err := strconv.Atoi(string(v))
		if err != nil {
			return fmt.Errorf("cannot scan %q into QuoteStatus: %w", v, err)
		}
		*s = QuoteStatus(i)
	default:
		return fmt.Errorf("cannot scan %T into QuoteStatus", value)
	}
	return nil
}
