package types

// Point is a real pair. It holds either surface pixels or complex-plane
// coordinates; pkg/viewport is the only place that converts between them.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Pointi is an integer pixel pair, used for surface sizes.
type Pointi struct {
	X, Y int
}
