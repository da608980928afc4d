package models

import "fmt"

// SeatClass is a cabin class on a flight. The numeric values are significant:
// they are derived from a passenger's priority and index per-class quotas.
type SeatClass int

const (
	ClassNone     SeatClass = -1
	ClassStandard SeatClass = 0
	ClassEconomy  SeatClass = 1
	ClassBusiness SeatClass = 2
)

// NumClasses is the number of sellable seat classes.
const NumClasses = 3

// ClassesDescending lists the sellable classes from business down to standard,
// the order used by reports and seat totals.
var ClassesDescending = [NumClasses]SeatClass{ClassBusiness, ClassEconomy, ClassStandard}

func (c SeatClass) String() string {
	switch c {
	case ClassStandard:
		return "standard"
	case ClassEconomy:
		return "economy"
	case ClassBusiness:
		return "business"
	default:
		return "none"
	}
}

// Valid reports whether c is one of the three sellable classes.
func (c SeatClass) Valid() bool {
	return c >= ClassStandard && c <= ClassBusiness
}

// ParseSeatClass maps a class label to its SeatClass.
func ParseSeatClass(label string) (SeatClass, bool) {
	switch label {
	case "standard":
		return ClassStandard, true
	case "economy":
		return ClassEconomy, true
	case "business":
		return ClassBusiness, true
	}
	return ClassNone, false
}

// MarshalText encodes the class as its label.
func (c SeatClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a class label, accepting "none" for ClassNone.
func (c *SeatClass) UnmarshalText(text []byte) error {
	if string(text) == "none" {
		*c = ClassNone
		return nil
	}
	class, ok := ParseSeatClass(string(text))
	if !ok {
		return fmt.Errorf("unknown seat class %q", text)
	}
	*c = class
	return nil
}

// SeatCounts holds one number per sellable class.
type SeatCounts struct {
	Business int `json:"business"`
	Economy  int `json:"economy"`
	Standard int `json:"standard"`
}

// Get returns the count for class.
func (s SeatCounts) Get(class SeatClass) int {
	switch class {
	case ClassBusiness:
		return s.Business
	case ClassEconomy:
		return s.Economy
	case ClassStandard:
		return s.Standard
	}
	return 0
}

// Add adds n to the count for class.
func (s *SeatCounts) Add(class SeatClass, n int) {
	switch class {
	case ClassBusiness:
		s.Business += n
	case ClassEconomy:
		s.Economy += n
	case ClassStandard:
		s.Standard += n
	}
}

// Total sums all classes.
func (s SeatCounts) Total() int {
	return s.Business + s.Economy + s.Standard
}
