// Package geometry provides the point types shared by the detection and
// calibration packages.
//
// All coordinates use the image convention: origin at the top-left corner,
// X increasing rightward and Y increasing downward.
package geometry

import (
	"image"
	"math"
)

// Point is a continuous 2D coordinate, typically a blob centroid.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Round returns the nearest integer point, rounding halves away from zero.
func (p Point) Round() IntPoint {
	return IntPoint{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// DistanceSquared returns the squared Euclidean distance to other.
//
// Use it for nearest-neighbour comparisons where only the ordering matters.
func (p Point) DistanceSquared(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance to other.
func (p Point) Distance(other Point) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

// IntPoint is a point with integer pixel coordinates.
type IntPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point.
func (p IntPoint) ToFloat() Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// ImagePoint converts to the standard library point type.
func (p IntPoint) ImagePoint() image.Point {
	return image.Pt(p.X, p.Y)
}

// Axis selects which coordinate of a point a one-dimensional grouping uses.
type Axis int

const (
	// AxisX extracts the horizontal coordinate.
	AxisX Axis = iota
	// AxisY extracts the vertical coordinate.
	AxisY
)

// Value returns the coordinate of p on the axis.
func (a Axis) Value(p Point) float64 {
	if a == AxisY {
		return p.Y
	}
	return p.X
}

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Centroids extracts the point list from anything that carries a centroid.
func Centroids[T interface{ Center() Point }](items []T) []Point {
	points := make([]Point, 0, len(items))
	for _, item := range items {
		points = append(points, item.Center())
	}
	return points
}
