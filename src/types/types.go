package types

import "time"

type Direction int

const (
	DirDown Direction = -1
	DirNone Direction = 0
	DirUp   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirNone:
		return "None"
	default:
		return "Undefined"
	}
}

// Opposite returns the reversed travel direction. DirNone maps to itself.
func (d Direction) Opposite() Direction {
	return -d
}

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "Closed"
	case DoorOpen:
		return "Open"
	default:
		return "Undefined"
	}
}

type CarMode int

const (
	Idle CarMode = iota
	Moving
	DoorCycle
	Emergency
	OutOfService
)

func (m CarMode) String() string {
	switch m {
	case Idle:
		return "Idle"
	case Moving:
		return "Moving"
	case DoorCycle:
		return "DoorCycle"
	case Emergency:
		return "Emergency"
	case OutOfService:
		return "OutOfService"
	default:
		return "Undefined"
	}
}

// RequestID identifies a pending request so it can be withdrawn before
// assignment. IDs are issued by the controller and never reused.
type RequestID uint64

// Request is an immutable hall-call event. Cab calls go straight to a car's
// destination set and never exist as Request values.
type Request struct {
	ID        RequestID
	Floor     int
	Direction Direction
	Timestamp time.Time
}

func NewHallRequest(id RequestID, floor int, dir Direction) Request {
	return Request{
		ID:        id,
		Floor:     floor,
		Direction: dir,
		Timestamp: time.Now(),
	}
}

// CarSnapshot is a read-only copy of a car's state, rich enough for cost
// scoring. Up and Down are copies of the destination sets in service order.
type CarSnapshot struct {
	ID        int
	Floor     int
	Direction Direction
	Mode      CarMode
	Door      DoorState
	Load      int
	Capacity  int
	Up        []int
	Down      []int
}

// CarStatus is the display/telemetry view of a car.
type CarStatus struct {
	ID        int
	Floor     int
	Mode      CarMode
	Direction Direction
	Door      DoorState
}
