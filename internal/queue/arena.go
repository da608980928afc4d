// Package queue keeps passenger records in an arena and threads them through
// singly-linked queues by handle.
package queue

import "github.com/cx-tal-miterani/ticket-admission/shared/models"

// Handle addresses a passenger record in an Arena. Handles are stable for the
// lifetime of the arena.
type Handle int

const none Handle = -1

// Arena owns passenger records in creation order. It doubles as the passenger
// registry: records are never removed.
type Arena struct {
	passengers []models.Passenger
	next       []Handle
	owner      []*Queue
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add stores a passenger and returns its handle. The passenger starts unlinked.
func (a *Arena) Add(p models.Passenger) Handle {
	a.passengers = append(a.passengers, p)
	a.next = append(a.next, none)
	a.owner = append(a.owner, nil)
	return Handle(len(a.passengers) - 1)
}

// Len is the number of records ever added.
func (a *Arena) Len() int {
	return len(a.passengers)
}

// Passenger returns a copy of the record behind h.
func (a *Arena) Passenger(h Handle) models.Passenger {
	return a.passengers[h]
}

// Find scans records in creation order for name.
func (a *Arena) Find(name string) (Handle, bool) {
	for i := range a.passengers {
		if a.passengers[i].Name == name {
			return Handle(i), true
		}
	}
	return none, false
}

// Assign records the class a passenger bought.
func (a *Arena) Assign(h Handle, class models.SeatClass) {
	a.passengers[h].Purchased = class
}

// NewQueue returns an empty queue threading records of this arena.
func (a *Arena) NewQueue() *Queue {
	return &Queue{arena: a, front: none, rear: none}
}

func (a *Arena) priority(h Handle) models.Priority {
	return a.passengers[h].Priority
}
