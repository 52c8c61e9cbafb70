package set

import (
	"slices"
	"testing"
)

func TestOrdered_InsertIsIdempotentAndKeepsOrder(t *testing.T) {
	s := New("b", "a")
	if s.Insert("b") {
		t.Fatalf("duplicate insert reported true")
	}
	s.Insert("c")
	if got := s.Slice(); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Fatalf("got=%v", got)
	}
}

func TestOrdered_Erase(t *testing.T) {
	s := New(1, 2, 3, 4)
	if !s.Erase(2) {
		t.Fatalf("erase existing returned false")
	}
	if s.Erase(2) {
		t.Fatalf("erase missing returned true")
	}
	if s.Contains(2) || s.Len() != 3 {
		t.Fatalf("2 still present, len=%d", s.Len())
	}
	if !s.Contains(4) {
		t.Fatalf("4 lost after erase")
	}
	s.Erase(4)
	if got := s.Slice(); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("got=%v", got)
	}
}

func TestOrdered_SetAlgebra(t *testing.T) {
	a := New(1, 2, 3)
	b := New(3, 4, 2)

	if got := a.Union(b).Slice(); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Fatalf("union=%v", got)
	}
	if got := a.Intersect(b).Slice(); !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("intersect=%v", got)
	}
	odd := a.Filter(func(v int) bool { return v%2 == 1 })
	if got := odd.Slice(); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("filter=%v", got)
	}
	if a.Len() != 3 || b.Len() != 3 {
		t.Fatalf("inputs mutated")
	}
}

func TestOrdered_AllStopsEarly(t *testing.T) {
	s := New("x", "y", "z")
	var seen []string
	for v := range s.All() {
		seen = append(seen, v)
		if v == "y" {
			break
		}
	}
	if !slices.Equal(seen, []string{"x", "y"}) {
		t.Fatalf("seen=%v", seen)
	}
}
