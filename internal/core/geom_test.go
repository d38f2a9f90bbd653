package core

import (
	"math"
	"testing"
	"time"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "resting on top (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "sub-unit overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(V(100, 50), 20, 10)

	if r.X != 90 || r.Y != 45 {
		t.Errorf("top-left = (%v, %v), expected (90, 45)", r.X, r.Y)
	}
	if r.Right() != 110 || r.Bottom() != 55 {
		t.Errorf("bottom-right = (%v, %v), expected (110, 55)", r.Right(), r.Bottom())
	}
	if c := r.Center(); c != V(100, 50) {
		t.Errorf("Center() = %v, expected (100, 50)", c)
	}
	if !r.Contains(V(90, 45)) || r.Contains(V(110, 55)) {
		t.Error("Contains should include the top-left corner and exclude the bottom-right edge")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestPingPong(t *testing.T) {
	if PingPong(0) != 0 {
		t.Errorf("PingPong(0) = %v, expected 0", PingPong(0))
	}
	if PingPong(0.5) != 1 {
		t.Errorf("PingPong(0.5) = %v, expected exactly 1", PingPong(0.5))
	}
	if math.Abs(PingPong(0.25)-0.5) > 1e-12 {
		t.Errorf("PingPong(0.25) = %v, expected 0.5", PingPong(0.25))
	}
	// Mirrored around the peak
	for _, p := range []float64{0.1, 0.2, 0.3, 0.45} {
		if math.Abs(PingPong(p)-PingPong(1-p)) > 1e-12 {
			t.Errorf("PingPong not symmetric at %v", p)
		}
	}
	// Never exceeds 1 and only touches it at the peak
	for i := 0; i < 1000; i++ {
		p := float64(i) / 1000
		v := PingPong(p)
		if v < 0 || v > 1 {
			t.Fatalf("PingPong(%v) = %v out of [0,1]", p, v)
		}
		if v == 1 && p != 0.5 {
			t.Fatalf("PingPong(%v) reached the peak away from mid-period", p)
		}
	}
}

func TestOscillateReturnsToStart(t *testing.T) {
	period := 4 * time.Second
	for k := 0; k < 5; k++ {
		if v := Oscillate(time.Duration(k)*period, period); v != 0 {
			t.Errorf("Oscillate at %d periods = %v, expected 0", k, v)
		}
		if v := Oscillate(time.Duration(k)*period+period/2, period); v != 1 {
			t.Errorf("Oscillate at %d.5 periods = %v, expected 1", k, v)
		}
	}
	if Oscillate(time.Second, 0) != 0 {
		t.Error("zero period should not oscillate")
	}
}
