package core

import "fmt"

// Point is an immutable grid coordinate, X is the column and Y the row
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point shifted by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Adjacent reports whether q is one orthogonal step away from p
// Diagonal neighbors and p itself are not adjacent
func (p Point) Adjacent(q Point) bool {
	return (p.X == q.X && abs(p.Y-q.Y) == 1) ||
		(p.Y == q.Y && abs(p.X-q.X) == 1)
}

// DistanceSquared returns the squared euclidean distance between p and q
func (p Point) DistanceSquared(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
