package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42, StreamItems)
	b := New(42, StreamItems)

	for i := 0; i < 100; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestStreamsDiffer(t *testing.T) {
	a := New(42, StreamItems)
	b := New(42, StreamDungeon)

	same := 0
	for i := 0; i < 50; i++ {
		if a.Intn(1<<30) == b.Intn(1<<30) {
			same++
		}
	}
	if same == 50 {
		t.Error("streams should produce different sequences")
	}
}

func TestBounds(t *testing.T) {
	h := New(7, StreamDungeon)

	if h.Intn(0) != 0 || h.Intn(-3) != 0 {
		t.Error("Intn of empty range should be 0")
	}
	if h.Range(5, 5) != 5 {
		t.Error("Range of empty interval should return lo")
	}
	for i := 0; i < 200; i++ {
		if v := h.Range(-2, 3); v < -2 || v >= 3 {
			t.Fatalf("Range(-2, 3) = %d", v)
		}
	}
	if h.OneIn(0) {
		t.Error("OneIn(0) should be false")
	}
	if !h.Percent(100) || h.Percent(0) {
		t.Error("Percent edges wrong")
	}
}

func TestChoose(t *testing.T) {
	h := New(1, StreamItems)
	if _, ok := Choose(h, []int(nil)); ok {
		t.Error("Choose of empty slice should fail")
	}
	if v, ok := Choose(h, []string{"only"}); !ok || v != "only" {
		t.Errorf("Choose() = %q, %v", v, ok)
	}
}

func TestMarshalRestoresState(t *testing.T) {
	h := New(99, StreamItems)
	h.Intn(10)

	state, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	expected := h.Intn(1 << 20)

	var restored Handle
	if err := restored.UnmarshalBinary(state); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if got := restored.Intn(1 << 20); got != expected {
		t.Errorf("restored draw = %d, expected %d", got, expected)
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed() error = %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed() error = %v", err)
	}
	if a == b {
		t.Error("two entropy seeds should differ")
	}
}
