package models

import "fmt"

// Priority encodes the requested class together with a privilege boost.
// Higher values are served first.
type Priority int

const (
	PriorityStandard Priority = 0
	PriorityEconomy  Priority = 2
	PriorityVeteran  Priority = 3
	PriorityBusiness Priority = 5
	PriorityDiplomat Priority = 6
)

// RequestedClass derives the class a passenger asked for.
func (p Priority) RequestedClass() SeatClass {
	return SeatClass((p + 1) / 3)
}

// Valid reports whether p is one of the five defined priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityStandard, PriorityEconomy, PriorityVeteran, PriorityBusiness, PriorityDiplomat:
		return true
	}
	return false
}

// Boost is an optional privilege attached to an enqueue request.
type Boost string

const (
	BoostNone     Boost = ""
	BoostVeteran  Boost = "veteran"
	BoostDiplomat Boost = "diplomat"
)

// PriorityFor combines a requested class and a boost. Veterans may only boost
// economy and diplomats only business; standard takes no boost.
func PriorityFor(class SeatClass, boost Boost) (Priority, error) {
	var base Priority
	switch class {
	case ClassStandard:
		base = PriorityStandard
	case ClassEconomy:
		base = PriorityEconomy
	case ClassBusiness:
		base = PriorityBusiness
	default:
		return 0, fmt.Errorf("invalid seat class %d", class)
	}

	switch {
	case boost == BoostNone:
		return base, nil
	case boost == BoostVeteran && class == ClassEconomy:
		return PriorityVeteran, nil
	case boost == BoostDiplomat && class == ClassBusiness:
		return PriorityDiplomat, nil
	}
	return 0, fmt.Errorf("boost %q not allowed for %s", boost, class)
}

// Passenger is a named traveller waiting for, or holding, a seat on one flight.
type Passenger struct {
	Name      string    `json:"name"`
	Flight    string    `json:"flight"`
	Priority  Priority  `json:"priority"`
	Purchased SeatClass `json:"purchased"`
}

// RequestedClass is the class derived from the passenger's priority.
func (p Passenger) RequestedClass() SeatClass {
	return p.Priority.RequestedClass()
}

// Seated reports whether the passenger has bought a seat.
func (p Passenger) Seated() bool {
	return p.Purchased != ClassNone
}
