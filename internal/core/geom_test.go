package core

import "testing"

func TestRectIntersects(t *testing.T) {
	avatar := NewRect(80, 300, 45, 45)

	tests := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{"lower pipe overlapping", NewRect(100, 330, 60, 270), true},
		{"upper pipe overlapping", NewRect(120, 0, 60, 301), true},
		{"pipe fully ahead", NewRect(200, 0, 60, 600), false},
		{"touching right edge", NewRect(125, 0, 60, 600), false},
		{"touching left edge", NewRect(20, 0, 60, 600), false},
		{"upper pipe ends at avatar top", NewRect(80, 0, 60, 300), false},
		{"lower pipe starts at avatar bottom", NewRect(80, 345, 60, 255), false},
		{"corner only", NewRect(125, 345, 10, 10), false},
		{"one unit of overlap", NewRect(124, 344, 10, 10), true},
		{"contained", NewRect(90, 310, 5, 5), true},
		{"zero height upper pipe", NewRect(80, 0, 60, 0), false},
		{"zero width", NewRect(100, 300, 0, 50), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := avatar.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.Intersects(avatar); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	bounds := NewRect(25, 1, 30, 23)

	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{"inside", NewRect(30, 5, 3, 2), NewRect(30, 5, 3, 2)},
		{"crossing right edge", NewRect(50, 3, 10, 4), NewRect(50, 3, 5, 4)},
		{"crossing top and left", NewRect(20, -2, 10, 5), NewRect(25, 1, 5, 2)},
		{"covering", NewRect(0, 0, 80, 24), bounds},
		{"outside", NewRect(60, 3, 5, 5), Rect{}},
		{"touching", NewRect(55, 3, 5, 5), Rect{}},
		{"empty", NewRect(30, 5, 0, 2), Rect{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Intersect(bounds); got != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	pipe := NewRect(400, 340, 60, 260)

	if pipe.Right() != 460 {
		t.Errorf("Right() = %d, expected 460", pipe.Right())
	}
	if pipe.Bottom() != 600 {
		t.Errorf("Bottom() = %d, expected 600", pipe.Bottom())
	}
	if pipe.Empty() {
		t.Error("Empty() should be false for a 60x260 rect")
	}
	if !NewRect(400, 0, 60, 0).Empty() {
		t.Error("Empty() should be true for zero height")
	}
	if !NewRect(0, 0, -1, 5).Empty() {
		t.Error("Empty() should be true for negative width")
	}
}
