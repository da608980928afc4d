package admission

import "github.com/cx-tal-miterani/ticket-admission/shared/models"

// sell distributes the flight's unsold quota to its waiting list.
//
// Phase one pops exactly as many passengers as were waiting when the sale
// started. Each either gets a seat in the class it asked for or is appended
// back to the rear, so a passenger requeued in this pass is never seen twice.
// Phase two hands any remaining standard seats to whoever is still waiting,
// regardless of the class they asked for.
//
// Requeues ignore priority, so a passenger passed over here queues behind
// everyone processed after it in later sales too.
func (s *Session) sell(f *Flight) (newly models.SeatCounts, requeued int) {
	waiting := f.waiting.Len()

	var remaining [models.NumClasses]int
	for class := range remaining {
		c := models.SeatClass(class)
		remaining[class] = f.seats[class] - f.sold.CountPurchased(c)
	}

	for i := 0; i < waiting; i++ {
		h, ok := f.waiting.RemoveFront()
		if !ok {
			break
		}
		wanted := s.arena.Passenger(h).RequestedClass()
		if remaining[wanted] > 0 {
			s.arena.Assign(h, wanted)
			f.sold.Insert(h, false)
			remaining[wanted]--
			newly.Add(wanted, 1)
			continue
		}
		f.waiting.Insert(h, false)
		requeued++
	}

	for remaining[models.ClassStandard] > 0 {
		h, ok := f.waiting.RemoveFront()
		if !ok {
			break
		}
		s.arena.Assign(h, models.ClassStandard)
		f.sold.Insert(h, false)
		remaining[models.ClassStandard]--
		newly.Add(models.ClassStandard, 1)
	}

	return newly, requeued
}
