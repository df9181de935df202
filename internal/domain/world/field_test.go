package world

import "testing"

func TestDefaultFieldMatchesTwentyByTwenty(t *testing.T) {
	field := DefaultField()
	if got, want := field.Area(), 400; got != want {
		t.Fatalf("area mismatch: got=%d want=%d", got, want)
	}
	if !field.Contains(Point{X: -10, Y: -10}) {
		t.Fatalf("expected min corner inside field")
	}
	if field.Contains(Point{X: 10, Y: 0}) {
		t.Fatalf("expected max edge outside field")
	}
}

func TestBoundsPointsRowMajor(t *testing.T) {
	b := Bounds{Min: Point{X: 0, Y: 0}, Max: Point{X: 2, Y: 2}}
	pts := b.Points()
	want := []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(pts) != len(want) {
		t.Fatalf("len mismatch: got=%d want=%d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("point %d mismatch: got=%v want=%v", i, pts[i], want[i])
		}
	}
}

func TestEmptyBoundsContainNothing(t *testing.T) {
	b := Bounds{}
	if b.Contains(Point{}) {
		t.Fatalf("expected empty bounds to contain nothing")
	}
	if b.Area() != 0 {
		t.Fatalf("expected zero area")
	}
}
