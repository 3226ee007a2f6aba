package scanner

import (
	"image"
	"image/color"
	"io"

	"github.com/ironsheep/sheet-scanner/internal/detection"
	"github.com/ironsheep/sheet-scanner/internal/imaging"
)

// Backend performs the raster work of a scan. Implementations must not
// modify their input images.
type Backend interface {
	Decode(r io.Reader) (image.Image, error)
	Invert(img image.Image) image.Image
	Grayscale(img image.Image) image.Image

	// EstimateSkewAngle returns the counter-clockwise tilt in degrees.
	EstimateSkewAngle(img image.Image) float64

	// Rotate turns img counter-clockwise by angle degrees, filling
	// uncovered area with fill.
	Rotate(img image.Image, angle float64, fill color.Color) image.Image

	Resize(img image.Image, width, height int) image.Image
	Crop(img image.Image, rect image.Rectangle) (image.Image, error)
	DetectBlobs(img image.Image, filter detection.SizeFilter, background uint8) []detection.Blob
}

// ImageBackend implements Backend with the imaging and detection packages.
type ImageBackend struct{}

var _ Backend = ImageBackend{}

func (ImageBackend) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func (ImageBackend) Invert(img image.Image) image.Image {
	return imaging.Invert(img)
}

func (ImageBackend) Grayscale(img image.Image) image.Image {
	return imaging.Grayscale(img)
}

func (ImageBackend) EstimateSkewAngle(img image.Image) float64 {
	return detection.EstimateSkewAngle(img)
}

func (ImageBackend) Rotate(img image.Image, angle float64, fill color.Color) image.Image {
	return imaging.Rotate(img, angle, fill)
}

func (ImageBackend) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height)
}

func (ImageBackend) Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	return imaging.Crop(img, rect)
}

func (ImageBackend) DetectBlobs(img image.Image, filter detection.SizeFilter, background uint8) []detection.Blob {
	return detection.DetectBlobs(img, filter, background)
}
