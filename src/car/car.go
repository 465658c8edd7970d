// Package car implements the per-car state machine: one discrete step per
// Advance call, destinations held in two ordered sets split around the
// current floor.
package car

import (
	"errors"
	"log/slog"

	"liftbank/src/types"
)

var ErrCapacityExceeded = errors.New("capacity exceeded")

type Car struct {
	id        int
	floor     int
	direction types.Direction
	door      types.DoorState
	mode      types.CarMode

	// up holds destinations above the current floor, down holds those below.
	// Placement happens once, at AddDestination time; movement keeps the
	// split consistent because a car only stops at floors taken from the set
	// matching its travel direction.
	up   floorSet
	down floorSet

	capacity int
	load     int

	// doorTicks counts the remaining DoorCycle steps. The door delay is a
	// counted state rather than a timer so Advance never blocks.
	doorTicks     int
	doorOpenTicks int
}

func New(id, floor, capacity, doorOpenTicks int) *Car {
	return &Car{
		id:            id,
		floor:         floor,
		direction:     types.DirNone,
		door:          types.DoorClosed,
		mode:          types.Idle,
		capacity:      capacity,
		doorOpenTicks: doorOpenTicks,
	}
}

func (c *Car) ID() int { return c.id }

// Advance performs exactly one discrete step: one floor of travel or one
// door-cycle tick. It never blocks and is deterministic given the current
// state. Emergency and OutOfService freeze the car regardless of anything
// queued.
func (c *Car) Advance() {
	switch c.mode {
	case types.Emergency, types.OutOfService, types.Idle:
		return

	case types.DoorCycle:
		c.doorTicks--
		if c.doorTicks > 0 {
			return
		}
		c.door = types.DoorClosed
		c.chooseNext()

	case types.Moving:
		c.floor += int(c.direction)
		if dest, ok := c.nextStop(); ok && dest == c.floor {
			c.setFor(c.direction).remove(c.floor)
			c.openDoor()
		}
	}
}

// AddDestination queues a stop at floor. It reports false in Emergency or
// OutOfService, where new destinations are rejected. A floor already queued
// on the relevant set is accepted without a second entry.
func (c *Car) AddDestination(floor int) bool {
	if c.mode == types.Emergency || c.mode == types.OutOfService {
		slog.Debug("Destination rejected", "car", c.id, "floor", floor, "mode", c.mode)
		return false
	}

	switch {
	case floor > c.floor:
		c.up.insert(floor)
	case floor < c.floor:
		c.down.insert(floor)
	default:
		// The car's own floor: serve in place when stationary, otherwise
		// queue it for the return pass.
		switch c.mode {
		case types.Idle:
			c.openDoor()
			return true
		case types.DoorCycle:
			c.doorTicks = c.doorOpenTicks
			return true
		case types.Moving:
			c.setFor(c.direction.Opposite()).insert(floor)
			return true
		}
	}

	if c.mode == types.Idle {
		if floor > c.floor {
			c.direction = types.DirUp
		} else {
			c.direction = types.DirDown
		}
		c.mode = types.Moving
		slog.Debug("Car departing", "car", c.id, "floor", c.floor, "direction", c.direction)
	}
	return true
}

// IsEligible reports whether the dispatcher may assign a hall call to this
// car: in service and not full.
func (c *Car) IsEligible() bool {
	if c.mode == types.Emergency || c.mode == types.OutOfService {
		return false
	}
	return c.load < c.capacity
}

// Board adds n riders. The load never exceeds capacity.
func (c *Car) Board(n int) error {
	if n < 0 || c.load+n > c.capacity {
		return ErrCapacityExceeded
	}
	c.load += n
	return nil
}

// Alight removes n riders. The load never goes negative.
func (c *Car) Alight(n int) error {
	if n < 0 || c.load-n < 0 {
		return ErrCapacityExceeded
	}
	c.load -= n
	return nil
}

// SetEmergency freezes the car. It takes effect on the next Advance and
// persists until Reset.
func (c *Car) SetEmergency() {
	slog.Warn("Car entering emergency stop", "car", c.id, "floor", c.floor)
	c.mode = types.Emergency
}

// SetOutOfService takes the car out of the roster until Reset.
func (c *Car) SetOutOfService() {
	slog.Info("Car taken out of service", "car", c.id, "floor", c.floor)
	c.mode = types.OutOfService
}

// Reset is the external recovery entry point for Emergency and OutOfService.
// Mode and direction are recomputed from whatever destinations remain.
func (c *Car) Reset() {
	if c.mode != types.Emergency && c.mode != types.OutOfService {
		return
	}
	c.door = types.DoorClosed
	c.doorTicks = 0
	c.direction = types.DirNone
	c.chooseNext()
	slog.Info("Car returned to service", "car", c.id, "floor", c.floor, "mode", c.mode)
}

// Snapshot returns a scoring/telemetry copy. Up and Down are in service
// order: Up ascending, Down descending.
func (c *Car) Snapshot() types.CarSnapshot {
	return types.CarSnapshot{
		ID:        c.id,
		Floor:     c.floor,
		Direction: c.direction,
		Mode:      c.mode,
		Door:      c.door,
		Load:      c.load,
		Capacity:  c.capacity,
		Up:        c.up.ascending(),
		Down:      c.down.descending(),
	}
}

func (c *Car) Status() types.CarStatus {
	return types.CarStatus{
		ID:        c.id,
		Floor:     c.floor,
		Mode:      c.mode,
		Direction: c.direction,
		Door:      c.door,
	}
}

// nextStop returns the nearest pending destination in the travel direction.
func (c *Car) nextStop() (floor int, ok bool) {
	switch c.direction {
	case types.DirUp:
		return c.up.lowest()
	case types.DirDown:
		return c.down.highest()
	}
	return 0, false
}

func (c *Car) setFor(dir types.Direction) *floorSet {
	if dir == types.DirDown {
		return &c.down
	}
	return &c.up
}

func (c *Car) openDoor() {
	c.mode = types.DoorCycle
	c.door = types.DoorOpen
	c.doorTicks = c.doorOpenTicks
	slog.Debug("Door opening", "car", c.id, "floor", c.floor)
}

// chooseNext picks direction and mode after a door cycle completes: continue
// in the travel direction, flip if only the opposite set has work, idle
// otherwise.
func (c *Car) chooseNext() {
	switch {
	case c.direction != types.DirNone && !c.setFor(c.direction).empty():
		c.mode = types.Moving
	case c.direction != types.DirNone && !c.setFor(c.direction.Opposite()).empty():
		c.direction = c.direction.Opposite()
		c.mode = types.Moving
		slog.Debug("Car reversing", "car", c.id, "floor", c.floor, "direction", c.direction)
	case c.direction == types.DirNone && !c.up.empty():
		c.direction = types.DirUp
		c.mode = types.Moving
	case c.direction == types.DirNone && !c.down.empty():
		c.direction = types.DirDown
		c.mode = types.Moving
	default:
		c.direction = types.DirNone
		c.mode = types.Idle
		slog.Debug("Car idle", "car", c.id, "floor", c.floor)
	}
}
