// Package admission is the seat admission engine: flights, their waiting and
// sold queues, and the two-phase selling algorithm.
package admission

import (
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/cx-tal-miterani/ticket-admission/internal/queue"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
)

// Session owns every flight and passenger of one directive stream. It is not
// safe for concurrent use; callers serialize access.
type Session struct {
	arena   *queue.Arena
	flights flights
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		arena:  queue.NewArena(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Flight looks up a flight by name.
func (s *Session) Flight(name string) (*Flight, bool) {
	f := s.flights.find(name)
	return f, f != nil
}

// FlightCount is the number of flights created so far.
func (s *Session) FlightCount() int {
	return len(s.flights)
}

// PassengerCount is the number of passengers created so far.
func (s *Session) PassengerCount() int {
	return s.arena.Len()
}

// AddSeats adds quota seats of class to a flight, creating the flight when
// the name is new.
func (s *Session) AddSeats(flightName string, class models.SeatClass, quota int) (*models.AddSeatsResult, error) {
	if flightName == "" {
		return nil, newError(KindMalformed, "missing flight name")
	}
	if !class.Valid() {
		return nil, newError(KindInvalidClass, strconv.Itoa(int(class)))
	}
	if quota < 0 {
		return nil, newError(KindInvalidQuota, strconv.Itoa(quota))
	}

	f := s.flights.find(flightName)
	if f != nil && quota > math.MaxInt-f.seats[class] {
		return nil, newError(KindInvalidQuota, strconv.Itoa(quota))
	}
	if f == nil {
		f = &Flight{
			Name:    flightName,
			waiting: s.arena.NewQueue(),
			sold:    s.arena.NewQueue(),
		}
		s.flights = append(s.flights, f)
		s.logger.Debug("flight created", "flight", flightName)
	}
	f.seats[class] += quota

	return &models.AddSeatsResult{Flight: f.Name, Seats: f.Seats()}, nil
}

// Enqueue creates a passenger and places it on a flight's waiting list in
// priority order. Passenger names are unique across all flights.
func (s *Session) Enqueue(passengerName, flightName string, priority models.Priority) (*models.EnqueueResult, error) {
	if passengerName == "" || flightName == "" {
		return nil, newError(KindMalformed, "missing passenger or flight name")
	}
	if !priority.Valid() {
		return nil, newError(KindInvalidBoost, strconv.Itoa(int(priority)))
	}

	f := s.flights.find(flightName)
	if f == nil {
		return nil, newError(KindUnknownFlight, flightName)
	}
	if f.closed {
		return nil, newError(KindFlightClosed, flightName)
	}
	if _, exists := s.arena.Find(passengerName); exists {
		return nil, newError(KindDuplicatePassenger, passengerName)
	}

	h := s.arena.Add(models.Passenger{
		Name:      passengerName,
		Flight:    f.Name,
		Priority:  priority,
		Purchased: models.ClassNone,
	})
	f.waiting.Insert(h, true)

	class := priority.RequestedClass()
	return &models.EnqueueResult{
		Flight:    f.Name,
		Passenger: passengerName,
		Class:     class,
		InClass:   f.waiting.CountRequested(class),
	}, nil
}

// Sell runs one sale event on an open flight.
func (s *Session) Sell(flightName string) (*models.SellResult, error) {
	f, err := s.openFlight(flightName)
	if err != nil {
		return nil, err
	}

	newly, requeued := s.sell(f)
	s.logger.Debug("tickets sold",
		"flight", f.Name,
		"business", newly.Business,
		"economy", newly.Economy,
		"standard", newly.Standard,
		"requeued", requeued,
		"waiting", f.waiting.Len(),
	)

	return &models.SellResult{
		Flight:   f.Name,
		Sold:     f.Sold(),
		Newly:    newly,
		Requeued: requeued,
	}, nil
}

// Close stops a flight from accepting passengers and drains its waiting list.
// The drained passengers stay unseated.
func (s *Session) Close(flightName string) (*models.CloseResult, error) {
	f, err := s.openFlight(flightName)
	if err != nil {
		return nil, err
	}
	f.closed = true

	res := &models.CloseResult{
		Flight:   f.Name,
		Sold:     f.sold.Len(),
		Waiting:  f.waiting.Len(),
		Stranded: make([]string, 0, f.waiting.Len()),
	}
	for {
		h, ok := f.waiting.RemoveFront()
		if !ok {
			break
		}
		res.Stranded = append(res.Stranded, s.arena.Passenger(h).Name)
	}

	s.logger.Debug("flight closed", "flight", f.Name, "sold", res.Sold, "stranded", res.Waiting)
	return res, nil
}

// Report lists the passengers seated on a flight by class, business first.
func (s *Session) Report(flightName string) (*models.Report, error) {
	f := s.flights.find(flightName)
	if f == nil {
		return nil, newError(KindUnknownFlight, flightName)
	}

	report := &models.Report{
		Flight:  f.Name,
		Closed:  f.closed,
		Classes: make([]models.ClassReport, 0, models.NumClasses),
	}
	for _, class := range models.ClassesDescending {
		cr := models.ClassReport{Class: class, Passengers: []string{}}
		f.sold.Each(func(_ queue.Handle, p models.Passenger) bool {
			if p.Purchased == class {
				cr.Passengers = append(cr.Passengers, p.Name)
			}
			return true
		})
		report.Classes = append(report.Classes, cr)
	}
	return report, nil
}

// Info describes a passenger.
func (s *Session) Info(passengerName string) (*models.PassengerInfo, error) {
	h, ok := s.arena.Find(passengerName)
	if !ok {
		return nil, newError(KindUnknownPassenger, passengerName)
	}
	p := s.arena.Passenger(h)
	return &models.PassengerInfo{
		Name:      p.Name,
		Flight:    p.Flight,
		Requested: p.RequestedClass(),
		Purchased: p.Purchased,
	}, nil
}

func (s *Session) openFlight(name string) (*Flight, error) {
	f := s.flights.find(name)
	if f == nil {
		return nil, newError(KindUnknownFlight, name)
	}
	if f.closed {
		return nil, newError(KindFlightClosed, name)
	}
	return f, nil
}
