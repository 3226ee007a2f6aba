package detection

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/segment"
	"gonum.org/v1/gonum/floats"
)

const (
	// SkewSearchRange is the largest tilt, in degrees, the estimator
	// considers in either direction.
	SkewSearchRange = 60.0

	// SkewStep is the angular resolution of the search in degrees.
	SkewStep = 0.2

	// maxSkewPoints caps the edge points used for voting; denser inputs are
	// subsampled at a fixed stride.
	maxSkewPoints = 50000

	skewLevel = 128
)

// EstimateSkewAngle estimates the counter-clockwise tilt of the text lines
// in an inverted page image (light ink on a dark background), in degrees.
//
// Rotating the image by the negated angle levels the lines. Pages with
// fewer than two usable edge points report 0.
//
// # Algorithm
//
//  1. Binarize at mid-grey and keep the bottom edge of every light run
//     (light pixel with a dark pixel below).
//  2. For each candidate angle a in [-SkewSearchRange, SkewSearchRange],
//     project the points onto rho = x*sin(a) + y*cos(a) and bin by pixel.
//  3. Score each angle by the sum of squared bin counts, which peaks when
//     points on the same line fall into the same bin.
//  4. Return the best-scoring angle.
func EstimateSkewAngle(img image.Image) float64 {
	points := bottomEdges(img)
	if len(points) < 2 {
		return 0
	}

	bounds := img.Bounds()
	maxRho := bounds.Dx() + bounds.Dy()
	bins := make([]float64, 2*maxRho+1)

	steps := int(math.Round(2*SkewSearchRange/SkewStep)) + 1
	scores := make([]float64, steps)

	for i := 0; i < steps; i++ {
		angle := -SkewSearchRange + float64(i)*SkewStep
		rad := angle * math.Pi / 180
		sin, cos := math.Sin(rad), math.Cos(rad)

		for j := range bins {
			bins[j] = 0
		}
		for _, p := range points {
			rho := float64(p.X)*sin + float64(p.Y)*cos
			bins[int(math.Round(rho))+maxRho]++
		}
		scores[i] = floats.Dot(bins, bins)
	}

	best := floats.MaxIdx(scores)
	return math.Round((-SkewSearchRange+float64(best)*SkewStep)*10) / 10
}

// bottomEdges returns the lower boundary pixels of light regions, relative
// to the image origin.
func bottomEdges(img image.Image) []image.Point {
	mask := segment.Threshold(img, skewLevel)
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	points := make([]image.Point, 0)
	for y := 0; y < height-1; y++ {
		row := y * mask.Stride
		next := row + mask.Stride
		for x := 0; x < width; x++ {
			if mask.Pix[row+x] != 0 && mask.Pix[next+x] == 0 {
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}

	if len(points) <= maxSkewPoints {
		return points
	}

	stride := (len(points) + maxSkewPoints - 1) / maxSkewPoints
	sampled := make([]image.Point, 0, maxSkewPoints)
	for i := 0; i < len(points); i += stride {
		sampled = append(sampled, points[i])
	}
	return sampled
}
