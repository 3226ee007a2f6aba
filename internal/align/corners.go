package align

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/sheet-scanner/internal/geometry"
)

// DefaultEdgeMargin keeps calibration search away from the image border and
// pads the crop rectangle around the located corners.
const DefaultEdgeMargin = 20

// ErrNoCalibrationMark is returned when no calibration mark survives the
// edge filter for a corner.
var ErrNoCalibrationMark = errors.New("no calibration mark found")

// Corners holds the calibration marks nearest the top-left and bottom-right
// corners of the canonical page.
type Corners struct {
	TopLeft     geometry.Point `json:"top_left"`
	BottomRight geometry.Point `json:"bottom_right"`
}

// CropRect returns the rectangle spanning both corners plus margin pixels on
// every side.
func (c Corners) CropRect(margin int) image.Rectangle {
	x0 := int(math.Round(c.TopLeft.X)) - margin
	y0 := int(math.Round(c.TopLeft.Y)) - margin
	x1 := int(math.Round(c.BottomRight.X)) + margin
	y1 := int(math.Round(c.BottomRight.Y)) + margin
	return image.Rect(x0, y0, x1, y1)
}

// LocateCorners picks the calibration centroids closest to (0,0) and to
// (canonical.X, canonical.Y).
//
// Centroids within margin pixels of the edges of bounds are ignored. Squared
// distances are compared directly since only their order matters. On equal
// distances the earlier centroid is kept.
func LocateCorners(centroids []geometry.Point, bounds image.Rectangle, canonical image.Point, margin int) (Corners, error) {
	candidates := withinMargin(centroids, bounds, margin)

	topLeft, ok := nearest(candidates, geometry.Pt(0, 0))
	if !ok {
		return Corners{}, fmt.Errorf("top-left corner: %w", ErrNoCalibrationMark)
	}
	bottomRight, ok := nearest(candidates, geometry.Pt(float64(canonical.X), float64(canonical.Y)))
	if !ok {
		return Corners{}, fmt.Errorf("bottom-right corner: %w", ErrNoCalibrationMark)
	}

	return Corners{TopLeft: topLeft, BottomRight: bottomRight}, nil
}

// withinMargin drops centroids closer than margin to any edge of bounds.
func withinMargin(points []geometry.Point, bounds image.Rectangle, margin int) []geometry.Point {
	m := float64(margin)
	minX, minY := float64(bounds.Min.X)+m, float64(bounds.Min.Y)+m
	maxX, maxY := float64(bounds.Max.X)-m, float64(bounds.Max.Y)-m

	kept := make([]geometry.Point, 0, len(points))
	for _, p := range points {
		if p.X < minX || p.Y < minY || p.X > maxX || p.Y > maxY {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func nearest(points []geometry.Point, target geometry.Point) (geometry.Point, bool) {
	var best geometry.Point
	bestDist := math.Inf(1)
	found := false

	for _, p := range points {
		if d := p.DistanceSquared(target); d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}
