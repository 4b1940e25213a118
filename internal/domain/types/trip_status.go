package types

import (
	"encoding/json"
	"fmt"
)

// TripStatus is the position of a passenger in the booking flow.
// The zero value is StatusHome.
type TripStatus uint8

const (
	StatusHome TripStatus = iota
	StatusBooked
	StatusInProgress
	StatusCompleted
)

var tripStatusNames = [...]string{
	StatusHome:       "home",
	StatusBooked:     "booked",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
}

var tripStatusSteps = [...]string{
	StatusHome:       "Book",
	StatusBooked:     "Waiting",
	StatusInProgress: "On the Way",
	StatusCompleted:  "Done",
}

func (s TripStatus) Valid() bool {
	return int(s) < len(tripStatusNames)
}

func (s TripStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TripStatus(%d)", uint8(s))
	}
	return tripStatusNames[s]
}

// Step returns the zero-based position of the status in the step indicator.
func (s TripStatus) Step() int {
	return int(s)
}

// StepLabel returns the passenger-facing label of the step.
func (s TripStatus) StepLabel() string {
	if !s.Valid() {
		return ""
	}
	return tripStatusSteps[s]
}

// ParseTripStatus is the inverse of String.
func ParseTripStatus(str string) (TripStatus, error) {
	for i, name := range tripStatusNames {
		if name == str {
			return TripStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown trip status %q", str)
}

func (s TripStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid trip status %d", uint8(s))
	}
	return json.Marshal(s.String())
}

func (s *TripStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTripStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
