package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// MaxDeskewAngle is the largest estimated skew, in degrees, that is
// corrected. Larger estimates come from degenerate pages and are ignored.
const MaxDeskewAngle = 45.0

// Invert returns the negative of img, turning dark ink into light marks.
func Invert(img image.Image) image.Image {
	return effect.Invert(img)
}

// Grayscale returns a single-channel copy of img.
func Grayscale(img image.Image) image.Image {
	return effect.Grayscale(img)
}

// ToRGBA returns a colour copy of img suitable for drawing annotations.
func ToRGBA(img image.Image) *image.RGBA {
	return clone.AsRGBA(img)
}

// Rotate rotates img counter-clockwise by angle degrees. The canvas grows to
// fit the rotated image and uncovered areas are painted with fill.
func Rotate(img image.Image, angle float64, fill color.Color) image.Image {
	return imaging.Rotate(img, angle, fill)
}

// ShouldDeskew reports whether an estimated skew angle is small enough to
// correct.
func ShouldDeskew(angle float64) bool {
	return math.Abs(angle) <= MaxDeskewAngle
}

// Resize scales img to exactly width x height with bilinear interpolation.
func Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Linear)
}

// Crop extracts rect from img. The rectangle is clipped to the image; the
// result always has its origin at (0,0).
func Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()
	clipped := rect.Intersect(bounds)
	if clipped.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", rect, bounds)
	}
	return imaging.Crop(img, clipped), nil
}

// Save writes img to path, choosing the encoder from the extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
