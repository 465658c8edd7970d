package car

import "slices"

// floorSet is an ordered set of floors backed by a sorted slice. Duplicates
// are collapsed on insert.
type floorSet struct {
	floors []int
}

// insert adds f and reports whether it was newly added.
func (s *floorSet) insert(f int) bool {
	i, found := slices.BinarySearch(s.floors, f)
	if found {
		return false
	}
	s.floors = slices.Insert(s.floors, i, f)
	return true
}

// remove deletes f and reports whether it was present.
func (s *floorSet) remove(f int) bool {
	i, found := slices.BinarySearch(s.floors, f)
	if !found {
		return false
	}
	s.floors = slices.Delete(s.floors, i, i+1)
	return true
}

func (s *floorSet) contains(f int) bool {
	_, found := slices.BinarySearch(s.floors, f)
	return found
}

func (s *floorSet) empty() bool {
	return len(s.floors) == 0
}

// lowest returns the smallest floor in the set. ok is false when empty.
func (s *floorSet) lowest() (floor int, ok bool) {
	if len(s.floors) == 0 {
		return 0, false
	}
	return s.floors[0], true
}

// highest returns the largest floor in the set. ok is false when empty.
func (s *floorSet) highest() (floor int, ok bool) {
	if len(s.floors) == 0 {
		return 0, false
	}
	return s.floors[len(s.floors)-1], true
}

// ascending returns a copy of the set, smallest floor first.
func (s *floorSet) ascending() []int {
	return slices.Clone(s.floors)
}

// descending returns a copy of the set, largest floor first.
func (s *floorSet) descending() []int {
	out := slices.Clone(s.floors)
	slices.Reverse(out)
	return out
}
