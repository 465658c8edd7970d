package dispatcher

import (
	"slices"

	"github.com/tiendc/go-deepcopy"

	"liftbank/src/types"
)

// ScoreFunc rates how well a car can serve a hall request. Lower is better.
// Scores only ever compare against each other, so the unit is strategy
// specific: floors for ScanCost, ticks for SimulatedCost.
type ScoreFunc func(snap types.CarSnapshot, req types.Request) int

// simulation guard for pathological states
const maxSimTicks = 10000

// ScanCost is the default SCAN/LOOK-informed strategy:
//   - idle car: distance to the request floor
//   - car already en route (same direction as the request, floor still
//     ahead): distance, no penalty
//   - anything else must double back: distance plus reversalPenalty
//
// The penalty deprioritizes reversing cars without ever excluding them, so a
// lone car still serves every request.
func ScanCost(reversalPenalty int) ScoreFunc {
	return func(snap types.CarSnapshot, req types.Request) int {
		dist := abs(req.Floor - snap.Floor)
		if snap.Mode == types.Idle || snap.Direction == types.DirNone {
			return dist
		}

		enRoute := snap.Direction == req.Direction &&
			((snap.Direction == types.DirUp && req.Floor >= snap.Floor) ||
				(snap.Direction == types.DirDown && req.Floor <= snap.Floor))
		if enRoute {
			return dist
		}
		return dist + reversalPenalty
	}
}

// SimulatedCost is the second concrete strategy: it copies the snapshot and
// steps it forward, counting ticks until the car would reach the request
// floor, including door cycles at every intermediate stop. Costlier to
// compute than ScanCost but weighs queued work, not just geometry.
func SimulatedCost(doorOpenTicks int) ScoreFunc {
	return func(snap types.CarSnapshot, req types.Request) int {
		sim := new(types.CarSnapshot)
		if err := deepcopy.Copy(sim, &snap); err != nil {
			panic(err)
		}

		ticks := 0
		switch {
		case req.Floor > sim.Floor:
			insertServiceOrder(&sim.Up, req.Floor, true)
		case req.Floor < sim.Floor:
			insertServiceOrder(&sim.Down, req.Floor, false)
		default:
			return ticks
		}

		if sim.Mode == types.DoorCycle {
			ticks += doorOpenTicks
		}
		if sim.Direction == types.DirNone {
			if req.Floor > sim.Floor {
				sim.Direction = types.DirUp
			} else {
				sim.Direction = types.DirDown
			}
		}

		for ; ticks < maxSimTicks; ticks++ {
			if len(nextSet(sim)) == 0 {
				sim.Direction = sim.Direction.Opposite()
			}
			sim.Floor += int(sim.Direction)
			set := nextSet(sim)
			if len(set) > 0 && set[0] == sim.Floor {
				if sim.Floor == req.Floor {
					return ticks + 1
				}
				popNext(sim)
				ticks += doorOpenTicks
			}
		}
		return maxSimTicks
	}
}

// nextSet returns the destination slice for the simulated travel direction,
// nearest floor first.
func nextSet(sim *types.CarSnapshot) []int {
	if sim.Direction == types.DirDown {
		return sim.Down
	}
	return sim.Up
}

func popNext(sim *types.CarSnapshot) {
	if sim.Direction == types.DirDown {
		sim.Down = sim.Down[1:]
	} else {
		sim.Up = sim.Up[1:]
	}
}

// insertServiceOrder keeps the slice sorted in service order: ascending for
// the up set, descending for the down set. Duplicates are collapsed.
func insertServiceOrder(set *[]int, floor int, ascending bool) {
	cmp := func(a, b int) int { return a - b }
	if !ascending {
		cmp = func(a, b int) int { return b - a }
	}
	i, found := slices.BinarySearchFunc(*set, floor, cmp)
	if found {
		return
	}
	*set = slices.Insert(*set, i, floor)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
