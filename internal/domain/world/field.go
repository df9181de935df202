package world

import "fmt"

type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds is a half-open rectangle of farmable cells: Min inclusive, Max exclusive.
type Bounds struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}

func DefaultField() Bounds {
	return Bounds{Min: Point{X: -10, Y: -10}, Max: Point{X: 10, Y: 10}}
}

func (b Bounds) Empty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}

func (b Bounds) Contains(p Point) bool {
	if b.Empty() {
		return false
	}
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

func (b Bounds) Area() int {
	if b.Empty() {
		return 0
	}
	return (b.Max.X - b.Min.X) * (b.Max.Y - b.Min.Y)
}

// Points lists every cell row by row.
func (b Bounds) Points() []Point {
	out := make([]Point, 0, b.Area())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

func ComparePoints(a, b Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
