package vmath

import "testing"

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at %d", i)
		}
	}
}

func TestFastRandIntnRange(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 10000; i++ {
		v := r.Intn(100)
		if v < 0 || v >= 100 {
			t.Fatalf("Intn(100) = %d", v)
		}
	}
	if r.Intn(0) != 0 || r.Intn(-4) != 0 {
		t.Error("Intn of non-positive bound must be 0")
	}
}

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	if r.Next() == 0 {
		t.Error("zero seed produced a stuck generator")
	}
}

func TestFastRandRead(t *testing.T) {
	buf := make([]byte, 13)
	n, err := NewFastRand(3).Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read = %d, %v", n, err)
	}
	other := make([]byte, 13)
	NewFastRand(3).Read(other)
	if string(buf) != string(other) {
		t.Error("Read not deterministic")
	}
}

func TestSign(t *testing.T) {
	if Sign(-9) != -1 || Sign(0) != 0 || Sign(3) != 1 {
		t.Error("Sign wrong")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs wrong")
	}
}
