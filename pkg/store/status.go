package store

import "fmt"

// Status is the outcome of the last operation a store ran.
type Status int

const (
	Initial Status = iota // No operation has run yet
	Loading               // An operation is in flight
	Success               // The last operation completed as expected
	Error                 // The last operation failed
)

var statusNames = [...]string{
	Initial: "initial",
	Loading: "loading",
	Success: "success",
	Error:   "error",
}

// String returns the lower-case name of the status.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("store: invalid status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("store: unknown status %q", text)
}

// Done reports whether the status is a completed outcome.
func (s Status) Done() bool {
	return s == Success || s == Error
}
