// Package controller is the composition root: it owns every car and the
// dispatcher, validates external calls, and advances simulated time one tick
// at a time.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"liftbank/src/car"
	"liftbank/src/config"
	"liftbank/src/dispatcher"
	"liftbank/src/types"
)

var (
	ErrInvalidFloor = errors.New("floor outside building range")
	ErrUnknownCar   = errors.New("unknown car id")
)

// Controller serializes all access to the car roster and the pending queue.
// Tick holds the lock for the whole step; request submission holds it only
// for the queue/car mutation, so callers never wait on a full tick.
type Controller struct {
	mu   sync.Mutex
	cfg  config.Config
	cars []*car.Car
	disp *dispatcher.Dispatcher
	seq  types.RequestID
}

// New builds the bank: cars get ids 0..NumCars-1, all starting idle at floor
// 0 with the configured capacity. score selects the dispatch strategy; nil
// means ScanCost with the configured reversal penalty.
func New(cfg config.Config, score dispatcher.ScoreFunc) *Controller {
	if score == nil {
		score = dispatcher.ScanCost(cfg.ReversalPenalty)
	}
	cars := make([]*car.Car, cfg.NumCars)
	for i := range cars {
		cars[i] = car.New(i, 0, cfg.CarCapacity, cfg.DoorOpenTicks)
	}
	slog.Info("Controller started", "cars", cfg.NumCars, "floors", cfg.NumFloors)
	return &Controller{
		cfg:  cfg,
		cars: cars,
		disp: dispatcher.New(score),
	}
}

// Tick advances every car by one step, in id order, then drains the pending
// queue. It is the sole entry point for time progression.
func (ctl *Controller) Tick() {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	for _, c := range ctl.cars {
		c.Advance()
	}
	ctl.disp.DrainPending(ctl.cars)
}

// RequestElevator submits a hall call. The returned id is only needed by
// callers that may later cancel; the call itself is fire-and-forget and its
// effect is observed through car state.
func (ctl *Controller) RequestElevator(floor int, dir types.Direction) (types.RequestID, error) {
	if err := ctl.checkFloor(floor); err != nil {
		return 0, err
	}
	if dir != types.DirUp && dir != types.DirDown {
		return 0, fmt.Errorf("hall call needs an up or down direction, got %v", dir)
	}

	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	ctl.seq++
	req := types.NewHallRequest(ctl.seq, floor, dir)
	ctl.disp.Enqueue(ctl.cars, req)
	return req.ID, nil
}

// SelectDestination registers an in-car call. The rider already chose the
// car by standing in it, so the dispatcher is bypassed.
func (ctl *Controller) SelectDestination(carID, floor int) error {
	if err := ctl.checkFloor(floor); err != nil {
		return err
	}

	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	c, err := ctl.carByID(carID)
	if err != nil {
		return err
	}
	if !c.AddDestination(floor) {
		slog.Warn("Cab call ignored", "car", carID, "floor", floor, "mode", c.Status().Mode)
	}
	return nil
}

// CancelRequest withdraws a still-pending hall call. Once a request has been
// handed to a car it is served, not rolled back, and Cancel reports false.
func (ctl *Controller) CancelRequest(id types.RequestID) bool {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.disp.Cancel(id)
}

// CarStatus returns the display snapshot for one car.
func (ctl *Controller) CarStatus(carID int) (types.CarStatus, error) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	c, err := ctl.carByID(carID)
	if err != nil {
		return types.CarStatus{}, err
	}
	return c.Status(), nil
}

// Snapshot returns the status of every car, id ascending.
func (ctl *Controller) Snapshot() []types.CarStatus {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	out := make([]types.CarStatus, len(ctl.cars))
	for i, c := range ctl.cars {
		out[i] = c.Status()
	}
	return out
}

// InService reports whether any car can still take assignments. False means
// the whole bank is down and displays should show "no service".
func (ctl *Controller) InService() bool {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	for _, c := range ctl.cars {
		mode := c.Status().Mode
		if mode != types.Emergency && mode != types.OutOfService {
			return true
		}
	}
	return false
}

// PendingRequests reports how many hall calls are still unassigned. This is
// expected steady-state under load, not a failure.
func (ctl *Controller) PendingRequests() int {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.disp.PendingCount()
}

// SetEmergency freezes a car. The signal wins over any queued work on that
// car's next advance.
func (ctl *Controller) SetEmergency(carID int) error {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	c, err := ctl.carByID(carID)
	if err != nil {
		return err
	}
	c.SetEmergency()
	return nil
}

// SetOutOfService removes a car from dispatch until ResetCar.
func (ctl *Controller) SetOutOfService(carID int) error {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	c, err := ctl.carByID(carID)
	if err != nil {
		return err
	}
	c.SetOutOfService()
	return nil
}

// ResetCar is the external recovery signal for Emergency/OutOfService cars.
func (ctl *Controller) ResetCar(carID int) error {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	c, err := ctl.carByID(carID)
	if err != nil {
		return err
	}
	c.Reset()
	return nil
}

// Board applies rider load to a car; the dispatcher consults the resulting
// load through IsEligible.
func (ctl *Controller) Board(carID, n int) error {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	c, err := ctl.carByID(carID)
	if err != nil {
		return err
	}
	return c.Board(n)
}

// Alight removes rider load from a car.
func (ctl *Controller) Alight(carID, n int) error {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	c, err := ctl.carByID(carID)
	if err != nil {
		return err
	}
	return c.Alight(n)
}

func (ctl *Controller) checkFloor(floor int) error {
	if floor < 0 || floor >= ctl.cfg.NumFloors {
		return fmt.Errorf("floor %d: %w", floor, ErrInvalidFloor)
	}
	return nil
}

func (ctl *Controller) carByID(carID int) (*car.Car, error) {
	if carID < 0 || carID >= len(ctl.cars) {
		return nil, fmt.Errorf("car %d: %w", carID, ErrUnknownCar)
	}
	return ctl.cars[carID], nil
}
