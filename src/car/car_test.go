package car

import (
	"testing"

	"liftbank/src/types"
)

const doorTicks = 3

// checkInvariant verifies the quiescent-state invariant: an idle car has no
// direction and no destinations, and a moving car always has work in its
// travel direction.
func checkInvariant(t *testing.T, c *Car) {
	t.Helper()
	snap := c.Snapshot()
	switch snap.Mode {
	case types.Idle:
		if snap.Direction != types.DirNone {
			t.Errorf("idle car %d has direction %v", snap.ID, snap.Direction)
		}
		if len(snap.Up) != 0 || len(snap.Down) != 0 {
			t.Errorf("idle car %d has destinations up=%v down=%v", snap.ID, snap.Up, snap.Down)
		}
	case types.Moving:
		if snap.Direction == types.DirNone {
			t.Errorf("moving car %d has no direction", snap.ID)
		}
		if len(snap.Up) == 0 && len(snap.Down) == 0 {
			t.Errorf("moving car %d has no destinations", snap.ID)
		}
	}
}

func TestTravelToDestination(t *testing.T) {
	c := New(0, 0, 8, doorTicks)

	if !c.AddDestination(5) {
		t.Fatal("AddDestination(5) rejected on an idle car")
	}
	st := c.Status()
	if st.Mode != types.Moving || st.Direction != types.DirUp {
		t.Fatalf("after AddDestination(5): mode=%v dir=%v, want Moving Up", st.Mode, st.Direction)
	}

	for i := 0; i < 5; i++ {
		checkInvariant(t, c)
		c.Advance()
	}
	st = c.Status()
	if st.Floor != 5 {
		t.Fatalf("after 5 advances: floor=%d, want 5", st.Floor)
	}
	if st.Mode != types.DoorCycle || st.Door != types.DoorOpen {
		t.Fatalf("at destination: mode=%v door=%v, want DoorCycle Open", st.Mode, st.Door)
	}

	for i := 0; i < doorTicks; i++ {
		c.Advance()
	}
	st = c.Status()
	if st.Mode != types.Idle || st.Direction != types.DirNone || st.Door != types.DoorClosed {
		t.Fatalf("after door cycle: mode=%v dir=%v door=%v, want Idle None Closed", st.Mode, st.Direction, st.Door)
	}
	checkInvariant(t, c)
}

func TestDuplicateDestinationCollapsed(t *testing.T) {
	c := New(0, 0, 8, doorTicks)
	c.AddDestination(3)
	c.AddDestination(3)

	snap := c.Snapshot()
	if len(snap.Up) != 1 || snap.Up[0] != 3 {
		t.Fatalf("up set = %v, want [3]", snap.Up)
	}

	// One arrival, one door cycle, then idle. A duplicate entry would leave
	// the car moving again.
	for i := 0; i < 3+doorTicks; i++ {
		c.Advance()
	}
	if st := c.Status(); st.Mode != types.Idle {
		t.Fatalf("after serving floor 3: mode=%v, want Idle", st.Mode)
	}
}

func TestServeInPlace(t *testing.T) {
	c := New(0, 2, 8, doorTicks)
	c.AddDestination(2)

	st := c.Status()
	if st.Mode != types.DoorCycle || st.Door != types.DoorOpen {
		t.Fatalf("cab call at current floor: mode=%v door=%v, want DoorCycle Open", st.Mode, st.Door)
	}
	for i := 0; i < doorTicks; i++ {
		c.Advance()
	}
	if st := c.Status(); st.Mode != types.Idle || st.Floor != 2 {
		t.Fatalf("after in-place door cycle: mode=%v floor=%d, want Idle 2", st.Mode, st.Floor)
	}
}

func TestDirectionFlip(t *testing.T) {
	c := New(0, 5, 8, doorTicks)
	c.AddDestination(7)
	c.AddDestination(2)

	// Up leg: two floors, then the door cycle at 7.
	c.Advance()
	c.Advance()
	if st := c.Status(); st.Floor != 7 || st.Mode != types.DoorCycle {
		t.Fatalf("up leg: floor=%d mode=%v, want 7 DoorCycle", st.Floor, st.Mode)
	}
	for i := 0; i < doorTicks; i++ {
		c.Advance()
	}
	st := c.Status()
	if st.Mode != types.Moving || st.Direction != types.DirDown {
		t.Fatalf("after door close with down work: mode=%v dir=%v, want Moving Down", st.Mode, st.Direction)
	}

	for i := 0; i < 5; i++ {
		c.Advance()
	}
	if st := c.Status(); st.Floor != 2 || st.Mode != types.DoorCycle {
		t.Fatalf("down leg: floor=%d mode=%v, want 2 DoorCycle", st.Floor, st.Mode)
	}
}

func TestCurrentFloorWhileMovingServedOnReturn(t *testing.T) {
	c := New(0, 0, 8, doorTicks)
	c.AddDestination(2)
	c.Advance() // floor 1

	// The car is departing floor 1; the stop lands on the return pass.
	c.AddDestination(1)
	snap := c.Snapshot()
	if len(snap.Down) != 1 || snap.Down[0] != 1 {
		t.Fatalf("down set = %v, want [1]", snap.Down)
	}

	c.Advance() // arrive at 2
	for i := 0; i < doorTicks; i++ {
		c.Advance()
	}
	c.Advance() // back down to 1
	if st := c.Status(); st.Floor != 1 || st.Mode != types.DoorCycle {
		t.Fatalf("return pass: floor=%d mode=%v, want 1 DoorCycle", st.Floor, st.Mode)
	}
}

func TestEmergencyFreezesCar(t *testing.T) {
	c := New(0, 0, 8, doorTicks)
	c.AddDestination(5)
	c.Advance()

	c.SetEmergency()
	if c.AddDestination(3) {
		t.Error("AddDestination accepted in Emergency")
	}
	if c.IsEligible() {
		t.Error("IsEligible true in Emergency")
	}

	before := c.Status().Floor
	c.Advance()
	if got := c.Status().Floor; got != before {
		t.Errorf("emergency car moved from %d to %d", before, got)
	}

	// Reset recomputes mode from the surviving destination set.
	c.Reset()
	st := c.Status()
	if st.Mode != types.Moving || st.Direction != types.DirUp {
		t.Fatalf("after reset with pending work: mode=%v dir=%v, want Moving Up", st.Mode, st.Direction)
	}
}

func TestOutOfServiceUntilReset(t *testing.T) {
	c := New(0, 0, 8, doorTicks)
	c.SetOutOfService()

	if c.AddDestination(2) {
		t.Error("AddDestination accepted while OutOfService")
	}
	c.Advance()
	if st := c.Status(); st.Mode != types.OutOfService {
		t.Fatalf("mode=%v, want OutOfService to persist across advances", st.Mode)
	}

	c.Reset()
	if st := c.Status(); st.Mode != types.Idle || st.Direction != types.DirNone {
		t.Fatalf("after reset: mode=%v dir=%v, want Idle None", st.Mode, st.Direction)
	}
	checkInvariant(t, c)
}

func TestLoadAndEligibility(t *testing.T) {
	c := New(0, 0, 2, doorTicks)

	if err := c.Board(2); err != nil {
		t.Fatalf("Board(2) on empty car: %v", err)
	}
	if err := c.Board(1); err == nil {
		t.Error("Board past capacity accepted")
	}
	if c.IsEligible() {
		t.Error("full car is eligible")
	}

	if err := c.Alight(1); err != nil {
		t.Fatalf("Alight(1): %v", err)
	}
	if !c.IsEligible() {
		t.Error("car with free capacity not eligible")
	}
	if err := c.Alight(5); err == nil {
		t.Error("Alight below zero accepted")
	}
}

func TestFloorSetOrdering(t *testing.T) {
	var s floorSet
	for _, f := range []int{7, 2, 9, 2, 4} {
		s.insert(f)
	}
	asc := s.ascending()
	want := []int{2, 4, 7, 9}
	if len(asc) != len(want) {
		t.Fatalf("ascending() = %v, want %v", asc, want)
	}
	for i := range want {
		if asc[i] != want[i] {
			t.Fatalf("ascending() = %v, want %v", asc, want)
		}
	}
	desc := s.descending()
	if desc[0] != 9 || desc[len(desc)-1] != 2 {
		t.Fatalf("descending() = %v, want highest first", desc)
	}

	if lo, ok := s.lowest(); !ok || lo != 2 {
		t.Errorf("lowest() = %d,%v, want 2,true", lo, ok)
	}
	if hi, ok := s.highest(); !ok || hi != 9 {
		t.Errorf("highest() = %d,%v, want 9,true", hi, ok)
	}
	if !s.remove(7) || s.remove(7) {
		t.Error("remove(7) should succeed once")
	}
}
