// Package dispatcher assigns hall requests to cars. Requests that no car can
// take stay in a FIFO pending queue and are re-scored on every drain pass;
// nothing is ever dropped.
package dispatcher

import (
	"log/slog"

	"liftbank/src/car"
	"liftbank/src/types"
)

type Dispatcher struct {
	score   ScoreFunc
	pending []types.Request
}

// New returns a dispatcher with the given scoring strategy.
func New(score ScoreFunc) *Dispatcher {
	return &Dispatcher{score: score}
}

// Enqueue appends req and immediately runs a drain pass, so the request is
// assigned on arrival whenever a car is eligible.
func (d *Dispatcher) Enqueue(cars []*car.Car, req types.Request) {
	d.pending = append(d.pending, req)
	slog.Debug("Hall request queued", "request", req.ID, "floor", req.Floor, "direction", req.Direction)
	d.DrainPending(cars)
}

// DrainPending walks the queue oldest first and hands each assignable request
// to its best car. Assigned requests are removed in place; the order of the
// remainder is preserved.
func (d *Dispatcher) DrainPending(cars []*car.Car) {
	if len(d.pending) == 0 {
		return
	}
	remaining := d.pending[:0]
	for _, req := range d.pending {
		best := d.selectCar(cars, req)
		if best != nil && best.AddDestination(req.Floor) {
			slog.Info("Request assigned", "request", req.ID, "floor", req.Floor, "car", best.ID())
			continue
		}
		remaining = append(remaining, req)
	}
	d.pending = remaining
}

// Cancel withdraws a pending request by identity. Requests already assigned
// to a car cannot be withdrawn and report false.
func (d *Dispatcher) Cancel(id types.RequestID) bool {
	for i, req := range d.pending {
		if req.ID == id {
			d.pending = append(d.pending[:i], d.pending[i+1:]...)
			slog.Info("Request withdrawn", "request", id, "floor", req.Floor)
			return true
		}
	}
	return false
}

func (d *Dispatcher) PendingCount() int {
	return len(d.pending)
}

// Pending returns a copy of the queue, oldest first.
func (d *Dispatcher) Pending() []types.Request {
	out := make([]types.Request, len(d.pending))
	copy(out, d.pending)
	return out
}

// selectCar scores every eligible car and picks the minimum. Cars arrive in
// id order and only a strictly lower score displaces the incumbent, so ties
// fall to the lowest id.
func (d *Dispatcher) selectCar(cars []*car.Car, req types.Request) *car.Car {
	var best *car.Car
	bestCost := 0
	for _, c := range cars {
		if !c.IsEligible() {
			continue
		}
		cost := d.score(c.Snapshot(), req)
		if best == nil || cost < bestCost {
			best = c
			bestCost = cost
		}
	}
	return best
}
