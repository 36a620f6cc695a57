package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 15, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching edges (no overlap)",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "contained box",
			a:        Box{X: 0, Y: 0, W: 20, H: 20},
			b:        Box{X: 5, Y: 5, W: 5, H: 5},
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 9.5, Y: 9.5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "negative coordinates",
			a:        Box{X: -20, Y: -20, W: 15, H: 15},
			b:        Box{X: -10, Y: -10, W: 10, H: 10},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(V(100, 50), V(20, 10))

	if b.X != 90 || b.Y != 45 || b.W != 20 || b.H != 10 {
		t.Errorf("BoxAround() = %+v, expected {90 45 20 10}", b)
	}
	if c := b.Center(); c != V(100, 50) {
		t.Errorf("Center() = %+v, expected (100, 50)", c)
	}
	if b.Right() != 110 || b.Top() != 55 {
		t.Errorf("edges = (%v, %v), expected (110, 55)", b.Right(), b.Top())
	}
}

func TestBoxUnion(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	b := Box{X: 20, Y: 5, W: 10, H: 10}

	u := a.Union(b)
	if u != (Box{X: 0, Y: 0, W: 30, H: 15}) {
		t.Errorf("Union() = %+v, expected {0 0 30 15}", u)
	}

	if got := (Box{}).Union(b); got != b {
		t.Errorf("empty.Union(b) = %+v, expected %+v", got, b)
	}
	if got := a.Union(Box{}); got != a {
		t.Errorf("a.Union(empty) = %+v, expected %+v", got, a)
	}
}

func TestBoxTranslate(t *testing.T) {
	b := Box{X: 1, Y: 2, W: 3, H: 4}.Translate(V(10, -2))
	if b != (Box{X: 11, Y: 0, W: 3, H: 4}) {
		t.Errorf("Translate() = %+v", b)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}
