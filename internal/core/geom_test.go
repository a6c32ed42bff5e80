package core

import (
	"math"
	"testing"
)

func TestNewCoordAcceptsIntegerTypes(t *testing.T) {
	a := NewCoord(3, int64(-4))
	b := NewCoord(uint8(3), int32(-4))
	c := NewCoord(X(3), Y(-4))

	if a != b || b != c {
		t.Errorf("NewCoord mismatch: %v %v %v", a, b, c)
	}
}

func TestCoordArithmetic(t *testing.T) {
	a := NewCoord(2, 5)
	b := NewCoord(-1, 3)

	if got := a.Add(b); got != NewCoord(1, 8) {
		t.Errorf("Add() = %v, expected (1,8)", got)
	}
	if got := a.Sub(b); got != NewCoord(3, 2) {
		t.Errorf("Sub() = %v, expected (3,2)", got)
	}
	if got := a.Neg(); got != NewCoord(-2, -5) {
		t.Errorf("Neg() = %v, expected (-2,-5)", got)
	}
	if got := a.Scale(3, -2); got != NewCoord(6, -10) {
		t.Errorf("Scale() = %v, expected (6,-10)", got)
	}
	if got := a.SlideX(4); got != NewCoord(6, 5) {
		t.Errorf("SlideX() = %v, expected (6,5)", got)
	}
	if got := a.SlideY(-5); got != NewCoord(2, 0) {
		t.Errorf("SlideY() = %v, expected (2,0)", got)
	}
	// value semantics: a itself is unchanged
	if a != NewCoord(2, 5) {
		t.Errorf("coordinate mutated in place: %v", a)
	}
}

func TestEucDist(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Coord
		expected float64
	}{
		{"same point", NewCoord(7, 7), NewCoord(7, 7), 0},
		{"3-4-5 triangle", NewCoord(0, 0), NewCoord(3, 4), 5},
		{"negative delta", NewCoord(-2, 1), NewCoord(1, -3), 5},
		{"unit diagonal", NewCoord(0, 0), NewCoord(1, 1), math.Sqrt2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.EucDist(tc.b); math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("EucDist() = %v, expected %v", got, tc.expected)
			}
			if tc.a.EucDist(tc.b) != tc.b.EucDist(tc.a) {
				t.Error("EucDist should be symmetric")
			}
		})
	}
}

func TestEucDistProperties(t *testing.T) {
	for x := -5; x <= 5; x++ {
		for y := -5; y <= 5; y++ {
			a := NewCoord(x, y)
			b := NewCoord(y*2, x-1)
			if a.EucDist(a) != 0 {
				t.Errorf("EucDist(%v, %v) should be 0", a, a)
			}
			if a.EucDist(b) != b.EucDist(a) {
				t.Errorf("EucDist not symmetric for %v, %v", a, b)
			}
		}
	}
}

func TestCoordOrdering(t *testing.T) {
	tests := []struct {
		a, b     Coord
		expected int
	}{
		{NewCoord(0, 0), NewCoord(0, 0), 0},
		{NewCoord(0, 9), NewCoord(1, 0), -1},
		{NewCoord(2, 1), NewCoord(2, 3), -1},
		{NewCoord(3, 0), NewCoord(2, 9), 1},
	}

	for _, tc := range tests {
		if got := tc.a.Compare(tc.b); got != tc.expected {
			t.Errorf("Compare(%v, %v) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestDirectionDeltas(t *testing.T) {
	seen := make(map[Coord]Direction)
	for _, d := range Directions() {
		delta := d.ToCoord()
		if prev, dup := seen[delta]; dup {
			t.Errorf("%v and %v share delta %v", prev, d, delta)
		}
		seen[delta] = d

		if delta.X < -1 || delta.X > 1 || delta.Y < -1 || delta.Y > 1 {
			t.Errorf("%v delta %v is not a unit vector", d, delta)
		}
		if d.IsDiagonal() != (delta.X != 0 && delta.Y != 0) {
			t.Errorf("%v IsDiagonal() inconsistent with delta %v", d, delta)
		}
		if d.Reverse().ToCoord() != delta.Neg() {
			t.Errorf("%v Reverse() delta = %v, expected %v", d, d.Reverse().ToCoord(), delta.Neg())
		}
	}
	if len(seen) != 9 {
		t.Errorf("expected 9 distinct deltas, got %d", len(seen))
	}
	if Stay.ToCoord() != (Coord{}) {
		t.Errorf("Stay should be the zero vector, got %v", Stay.ToCoord())
	}
}

func TestEndlessIter(t *testing.T) {
	start := NewCoord(10, -3)
	for _, d := range Directions() {
		n := 0
		for c := range start.EndlessIter(d) {
			expected := start.Add(d.ToCoord().Scale(X(n), Y(n)))
			if c != expected {
				t.Fatalf("%v: element %d = %v, expected %v", d, n, c, expected)
			}
			n++
			if n == 50 {
				break
			}
		}
	}
}

func TestEndlessIterRestartsFromStart(t *testing.T) {
	seq := NewCoord(0, 0).EndlessIter(Right)

	first := []Coord{}
	for c := range seq {
		first = append(first, c)
		if len(first) == 3 {
			break
		}
	}

	for c := range seq {
		if c != NewCoord(0, 0) {
			t.Errorf("second range should restart at origin, got %v", c)
		}
		break
	}
	if first[2] != NewCoord(2, 0) {
		t.Errorf("third element = %v, expected (2,0)", first[2])
	}
}

func TestDirectionIterExcludesEnd(t *testing.T) {
	var got []Coord
	for c := range NewCoord(0, 0).DirectionIter(Down, func(c Coord) bool { return c.Y == 3 }) {
		got = append(got, c)
	}

	expected := []Coord{NewCoord(0, 0), NewCoord(0, 1), NewCoord(0, 2)}
	if len(got) != len(expected) {
		t.Fatalf("got %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("element %d = %v, expected %v", i, got[i], expected[i])
		}
	}

	// predicate matching the start yields nothing
	for c := range NewCoord(5, 5).DirectionIter(Left, func(Coord) bool { return true }) {
		t.Errorf("unexpected element %v", c)
	}
}

func TestRect(t *testing.T) {
	r := NewRect(NewCoord(2, 3), 5, 4)

	if r.Width() != 5 || r.Height() != 4 {
		t.Errorf("size = %dx%d, expected 5x4", r.Width(), r.Height())
	}
	if !r.Contains(NewCoord(6, 6)) || r.Contains(NewCoord(7, 6)) {
		t.Error("Contains() edges wrong")
	}

	inner := r.Inner()
	if inner.Min != NewCoord(3, 4) || inner.Max != NewCoord(5, 5) {
		t.Errorf("Inner() = %v, expected (3,4)-(5,5)", inner)
	}

	count := 0
	for range r.Cells() {
		count++
	}
	if count != 20 {
		t.Errorf("Cells() yielded %d, expected 20", count)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if result := Clamp(tc.val, tc.min, tc.max); result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestPathCompare(t *testing.T) {
	tests := []struct {
		a, b     Path
		expected int
	}{
		{NewPath(1, NewCoord(5, 5)), NewPath(1, NewCoord(5, 5)), 0},
		{NewPath(1, NewCoord(9, 9)), NewPath(2, NewCoord(0, 0)), -1},
		{NewPath(2, NewCoord(3, 0)), NewPath(2, NewCoord(2, 7)), 1},
	}

	for _, tc := range tests {
		if got := tc.a.Compare(tc.b); got != tc.expected {
			t.Errorf("Compare(%v, %v) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}
