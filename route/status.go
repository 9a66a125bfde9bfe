package route

import (
	"fmt"
)

// ValidationStatus is the lifecycle state of a route validator.
type ValidationStatus int

const (
	// StatusStarted is the initial state, before any accepted point.
	StatusStarted ValidationStatus = iota
	// StatusInProgress is reached on the first accepted point.
	StatusInProgress
	// StatusCompleted is reached when a proof is generated. Terminal.
	StatusCompleted
	// StatusFailed is reached only by an explicit abort. Terminal.
	StatusFailed
)

// statusNames is the single canonical text mapping for statuses.
var statusNames = map[ValidationStatus]string{
	StatusStarted:    "started",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusFailed:     "failed",
}

// String returns the canonical text form of the status.
func (s ValidationStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Terminal checks if the status permits no further point acceptance.
func (s ValidationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// MarshalText implements encoding.TextMarshaler.
func (s ValidationStatus) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal unknown status %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ValidationStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses the canonical text form of a status.
func ParseStatus(name string) (ValidationStatus, error) {
	for status, statusName := range statusNames {
		if statusName == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown validation status %q", name)
}
