package sparse

import (
	"slices"
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
	if !s.Insert(5) {
		t.Error("insert after clear should return true")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	for _, v := range []uint32{5, 2, 8, 1} {
		s.Insert(v)
	}
	if got, want := s.Values(), []uint32{5, 2, 8, 1}; !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestSparseSet_Remove(t *testing.T) {
	s := NewSparseSet(16)
	for _, v := range []uint32{1, 2, 3, 4} {
		s.Insert(v)
	}

	s.Remove(2)
	if s.Contains(2) {
		t.Error("2 should be gone after Remove")
	}
	if got, want := s.Values(), []uint32{1, 4, 3}; !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v (last member fills the hole)", got, want)
	}

	s.Remove(9) // not a member
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	for _, v := range []uint32{1, 3, 4} {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false after unrelated Remove", v)
		}
	}
}

func TestSparseSet_OutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Cap() != 4 {
		t.Errorf("Cap() = %d, want 4", s.Cap())
	}
	if s.Contains(4) || s.Contains(^uint32(0)) {
		t.Error("values at or above capacity must not be members")
	}

	defer func() {
		if recover() == nil {
			t.Error("Insert above capacity should panic")
		}
	}()
	s.Insert(4)
}

func TestSparseSet_StaleSparseEntry(t *testing.T) {
	// After Clear the sparse array still holds old indexes; they must not
	// make values look present.
	s := NewSparseSet(8)
	s.Insert(3)
	s.Insert(6)
	s.Clear()
	s.Insert(6)
	if s.Contains(3) {
		t.Error("stale sparse entry reported 3 as present")
	}
	if !s.Contains(6) {
		t.Error("6 should be present")
	}
}
