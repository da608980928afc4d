package queue

import (
	"fmt"

	"github.com/cx-tal-miterani/ticket-admission/shared/models"
)

// Queue is a singly-linked sequence of arena records. It supports priority
// ordered insertion, plain append and removal from the front.
type Queue struct {
	arena *Arena
	front Handle
	rear  Handle
	size  int
}

// Len is the number of linked records.
func (q *Queue) Len() int {
	return q.size
}

// Front returns the first handle without removing it.
func (q *Queue) Front() (Handle, bool) {
	return q.front, q.size > 0
}

// Insert links h into the queue. With respectPriority it goes after every
// record of equal or higher priority, so ties keep arrival order. Without it
// h is appended at the rear whatever its priority.
func (q *Queue) Insert(h Handle, respectPriority bool) {
	a := q.arena
	if a.owner[h] != nil {
		panic(fmt.Sprintf("queue: passenger %q is already queued", a.passengers[h].Name))
	}
	a.owner[h] = q
	a.next[h] = none
	q.size++

	if q.front == none {
		q.front, q.rear = h, h
		return
	}

	if !respectPriority {
		a.next[q.rear] = h
		q.rear = h
		return
	}

	p := a.priority(h)
	if p > a.priority(q.front) {
		a.next[h] = q.front
		q.front = h
		return
	}

	cur := q.front
	for a.next[cur] != none && a.priority(a.next[cur]) >= p {
		cur = a.next[cur]
	}
	a.next[h] = a.next[cur]
	a.next[cur] = h
	if cur == q.rear {
		q.rear = h
	}
}

// RemoveFront detaches and returns the first handle.
func (q *Queue) RemoveFront() (Handle, bool) {
	if q.size == 0 {
		return none, false
	}
	a := q.arena
	h := q.front
	q.front = a.next[h]
	a.next[h] = none
	a.owner[h] = nil
	q.size--
	if q.size == 0 {
		q.rear = none
	}
	return h, true
}

// Each calls fn for every record front to rear until fn returns false.
func (q *Queue) Each(fn func(h Handle, p models.Passenger) bool) {
	a := q.arena
	for h := q.front; h != none; h = a.next[h] {
		if !fn(h, a.passengers[h]) {
			return
		}
	}
}

// CountRequested counts records whose requested class is class.
func (q *Queue) CountRequested(class models.SeatClass) int {
	n := 0
	q.Each(func(_ Handle, p models.Passenger) bool {
		if p.RequestedClass() == class {
			n++
		}
		return true
	})
	return n
}

// CountPurchased counts records that bought a seat in class.
func (q *Queue) CountPurchased(class models.SeatClass) int {
	n := 0
	q.Each(func(_ Handle, p models.Passenger) bool {
		if p.Purchased == class {
			n++
		}
		return true
	})
	return n
}

// Names lists passenger names front to rear.
func (q *Queue) Names() []string {
	names := make([]string, 0, q.size)
	q.Each(func(_ Handle, p models.Passenger) bool {
		names = append(names, p.Name)
		return true
	})
	return names
}
