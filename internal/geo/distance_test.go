package geo

import "testing"

func TestDistance_ZeroForSamePoint(t *testing.T) {
	for _, p := range []Point{{0, 0}, {10, 10}, {-45.5, 120.25}} {
		if d := Between(p, p); d != 0 {
			t.Fatalf("Between(%v,%v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{10, 10}, {40, 50}},
		{{0, 0}, {3, 4}},
		{{-12.5, 7}, {88, -3.25}},
	}
	for _, pr := range pairs {
		ab := Between(pr[0], pr[1])
		ba := Between(pr[1], pr[0])
		if ab != ba {
			t.Fatalf("distance not symmetric: %v vs %v for %v", ab, ba, pr)
		}
	}
}

func TestDistance_Pythagorean(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Fatalf("Distance(0,0,3,4) = %v, want 5", d)
	}
}

func TestRadiusBoundary(t *testing.T) {
	tests := []struct {
		d       float64
		within  bool
		exceeds bool
	}{
		{29.999, true, false},
		{30, false, false},
		{30.001, false, true},
	}
	for _, tt := range tests {
		if got := IsWithinRadius(tt.d, DefaultStoreRadius); got != tt.within {
			t.Errorf("IsWithinRadius(%v) = %v, want %v", tt.d, got, tt.within)
		}
		if got := ExceedsRadius(tt.d, DefaultStoreRadius); got != tt.exceeds {
			t.Errorf("ExceedsRadius(%v) = %v, want %v", tt.d, got, tt.exceeds)
		}
	}
}
