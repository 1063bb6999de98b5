package rng

import "testing"

func TestSourceDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		if x, y := a.Uint32(), b.Uint32(); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestSourceSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint32() == b.Uint32() {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical streams")
	}
}

func TestUnitRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		u := s.Unit()
		if u < 0 || u > 1 {
			t.Fatalf("Unit() = %v, want [0, 1]", u)
		}
	}
}

func TestFreshSeedFitsUint32(t *testing.T) {
	for i := 0; i < 100; i++ {
		if s := FreshSeed(); s > 0xFFFFFFFF {
			t.Fatalf("FreshSeed() = %d exceeds uint32", s)
		}
	}
	if New(99).Seed() != 99 {
		t.Error("Seed() does not report the construction seed")
	}
}
