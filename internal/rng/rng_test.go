package rng

import "testing"

func TestNewZeroSeedNudged(t *testing.T) {
	s := New(0)
	if s.state == 0 {
		t.Fatalf("zero seed must be nudged to a non-zero state")
	}
}

func TestNextDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10; i++ {
		av, bv := a.Next(), b.Next()
		if av != bv {
			t.Fatalf("draw %d diverged: %v != %v", i, av, bv)
		}
	}
}

func TestNextInUnitInterval(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %v out of [0,1)", v)
		}
	}
}

func TestNormalMeanApproximatelyCentred(t *testing.T) {
	s := New(1234)
	var sum float64
	const n = 20000
	for i := 0; i < n; i++ {
		sum += s.Normal(10, 2)
	}
	mean := sum / n
	if mean < 9.5 || mean > 10.5 {
		t.Fatalf("normal(10,2) sample mean %v far from 10", mean)
	}
}

func TestUniformBounds(t *testing.T) {
	s := New(5)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(3, 9)
		if v < 3 || v >= 9 {
			t.Fatalf("uniform(3,9) draw %v out of range", v)
		}
	}
}

func TestBetaInUnitInterval(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		v := s.Beta(2, 5)
		if v < 0 || v > 1 {
			t.Fatalf("beta(2,5) draw %v out of [0,1]", v)
		}
	}
}

func TestTriangularBounds(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.Triangular(1, 2, 4)
		if v < 1 || v > 4 {
			t.Fatalf("triangular(1,2,4) draw %v out of [1,4]", v)
		}
	}
}

func TestLognormalPositive(t *testing.T) {
	s := New(11)
	for i := 0; i < 1000; i++ {
		if v := s.Lognormal(0, 1); v <= 0 {
			t.Fatalf("lognormal draw %v must be strictly positive", v)
		}
	}
}
