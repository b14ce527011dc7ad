package main

import (
	"math"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID(4)
	if len(id) != 8 {
		t.Errorf("id length = %d, want 8 hex chars", len(id))
	}
	if id == GenerateID(4) {
		t.Error("consecutive ids collided")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("in-range value changed")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("below-min not clamped")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("above-max not clamped")
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("distance = %f, want 5", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{-0.1, 2*math.Pi - 0.1},
		{2*math.Pi + 0.5, 0.5},
		{-2 * math.Pi, 0},
	}
	for _, c := range cases {
		if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("WrapAngle(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestRound1(t *testing.T) {
	if got := round1(123.456); got != 123.5 {
		t.Errorf("round1 = %f, want 123.5", got)
	}
	if got := round1(123.44); got != 123.4 {
		t.Errorf("round1 = %f, want 123.4", got)
	}
}

func TestRandFloatRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := randFloat()
		if v < 0 || v >= 1 {
			t.Fatalf("randFloat out of range: %f", v)
		}
	}
}
