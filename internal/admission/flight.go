package admission

import (
	"github.com/cx-tal-miterani/ticket-admission/internal/queue"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
)

// Flight is a sellable resource: three cumulative class quotas, a priority
// ordered waiting list and the list of passengers who bought seats.
type Flight struct {
	Name    string
	seats   [models.NumClasses]int
	closed  bool
	waiting *queue.Queue
	sold    *queue.Queue
}

// Seats returns the cumulative quota per class.
func (f *Flight) Seats() models.SeatCounts {
	return models.SeatCounts{
		Business: f.seats[models.ClassBusiness],
		Economy:  f.seats[models.ClassEconomy],
		Standard: f.seats[models.ClassStandard],
	}
}

// Sold counts purchased seats per class.
func (f *Flight) Sold() models.SeatCounts {
	var c models.SeatCounts
	for _, class := range models.ClassesDescending {
		c.Add(class, f.sold.CountPurchased(class))
	}
	return c
}

// Closed reports whether the flight stopped accepting passengers.
func (f *Flight) Closed() bool {
	return f.closed
}

// Waiting is the number of passengers still waiting.
func (f *Flight) Waiting() int {
	return f.waiting.Len()
}

// WaitingNames lists waiting passengers in queue order.
func (f *Flight) WaitingNames() []string {
	return f.waiting.Names()
}

// flights is the append-only flight registry. Lookups scan from the most
// recently created flight.
type flights []*Flight

func (fs flights) find(name string) *Flight {
	for i := len(fs) - 1; i >= 0; i-- {
		if fs[i].Name == name {
			return fs[i]
		}
	}
	return nil
}
