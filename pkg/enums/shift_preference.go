package enums

import "fmt"

// ShiftPreference captures the time of day the client wants work done.
type ShiftPreference string

const (
	ShiftMorning   ShiftPreference = "morning"
	ShiftAfternoon ShiftPreference = "afternoon"
	ShiftEvening   ShiftPreference = "evening"
	ShiftFlexible  ShiftPreference = "flexible"
)

var validShiftPreferences = []ShiftPreference{
	ShiftMorning,
	ShiftAfternoon,
	ShiftEvening,
	ShiftFlexible,
}

// String implements fmt.Stringer.
func (s ShiftPreference) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShiftPreference.
func (s ShiftPreference) IsValid() bool {
	for _, candidate := range validShiftPreferences {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShiftPreference converts raw input into a ShiftPreference.
func ParseShiftPreference(value string) (ShiftPreference, error) {
	for _, candidate := range validShiftPreferences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shift preference %q", value)
}
