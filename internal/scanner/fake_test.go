package scanner

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/ironsheep/sheet-scanner/internal/config"
	"github.com/ironsheep/sheet-scanner/internal/detection"
	"github.com/ironsheep/sheet-scanner/internal/geometry"
)

// fakeBackend returns canned blobs per size filter and records the calls
// that shape the page.
type fakeBackend struct {
	decodeErr error
	angle     float64
	blobs     map[detection.SizeFilter][]detection.Blob

	decodes   int
	rotations []float64
	crops     []image.Rectangle
}

func (f *fakeBackend) Decode(r io.Reader) (image.Image, error) {
	f.decodes++
	if f.decodeErr != nil {
		return nil, fmt.Errorf("failed to decode image: %w", f.decodeErr)
	}
	return image.NewGray(image.Rect(0, 0, 100, 150)), nil
}

func (f *fakeBackend) Invert(img image.Image) image.Image    { return img }
func (f *fakeBackend) Grayscale(img image.Image) image.Image { return img }

func (f *fakeBackend) EstimateSkewAngle(img image.Image) float64 { return f.angle }

func (f *fakeBackend) Rotate(img image.Image, angle float64, fill color.Color) image.Image {
	f.rotations = append(f.rotations, angle)
	return img
}

func (f *fakeBackend) Resize(img image.Image, width, height int) image.Image {
	return image.NewGray(image.Rect(0, 0, width, height))
}

func (f *fakeBackend) Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	f.crops = append(f.crops, rect)
	return image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy())), nil
}

func (f *fakeBackend) DetectBlobs(img image.Image, filter detection.SizeFilter, background uint8) []detection.Blob {
	return f.blobs[filter]
}

func blobAt(x, y float64) detection.Blob {
	return detection.Blob{
		Bounds:   image.Rect(int(x)-10, int(y)-10, int(x)+10, int(y)+10),
		Centroid: geometry.Pt(x, y),
		Area:     400,
	}
}

func blobsAt(points ...geometry.Point) []detection.Blob {
	blobs := make([]detection.Blob, 0, len(points))
	for _, p := range points {
		blobs = append(blobs, blobAt(p.X, p.Y))
	}
	return blobs
}

func standardProfile() config.Profile {
	p, _ := config.Builtin("standard")
	return p
}

// twoAnswerSheet is a sheet with one alignment row at y=900, one answer in
// each of the two columns on that row and two marks off any row.
func twoAnswerSheet() *fakeBackend {
	p := standardProfile()
	return &fakeBackend{
		blobs: map[detection.SizeFilter][]detection.Blob{
			p.CalibrationBlobs: blobsAt(geometry.Pt(50, 50), geometry.Pt(1200, 1850)),
			p.AlignmentBlobs:   blobsAt(geometry.Pt(100, 900), geometry.Pt(1100, 900)),
			p.AnswerBlobs: blobsAt(
				geometry.Pt(1017, 902),
				geometry.Pt(500, 1300),
				geometry.Pt(706, 897),
				geometry.Pt(900, 400),
			),
		},
	}
}
