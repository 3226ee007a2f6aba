package detection

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// newDarkImage creates a black grayscale image, the form of an inverted scan.
func newDarkImage(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// fillRect paints the rectangle [x1,x2) x [y1,y2) with value.
func fillRect(img *image.Gray, x1, y1, x2, y2 int, value uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}
}

func TestSizeFilterAccepts(t *testing.T) {
	f := SizeFilter{MinWidth: 15, MaxWidth: 35, MinHeight: 15, MaxHeight: 35}

	tests := []struct {
		w, h int
		want bool
	}{
		{15, 15, true},
		{35, 35, true},
		{20, 30, true},
		{14, 20, false},
		{20, 14, false},
		{36, 20, false},
		{20, 36, false},
	}
	for _, tt := range tests {
		if got := f.Accepts(tt.w, tt.h); got != tt.want {
			t.Errorf("Accepts(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}

	open := SizeFilter{MinWidth: 2, MinHeight: 2}
	if !open.Accepts(5000, 5000) {
		t.Error("zero maximum should leave size unbounded")
	}
}

func TestDetectBlobs(t *testing.T) {
	img := newDarkImage(200, 100)
	fillRect(img, 10, 10, 30, 30, 255)   // 20x20 square
	fillRect(img, 100, 20, 140, 40, 255) // 40x20 bar
	fillRect(img, 170, 80, 172, 82, 255) // 2x2 speck

	blobs := DetectBlobs(img, SizeFilter{MinWidth: 5, MinHeight: 5}, 0)

	if len(blobs) != 2 {
		t.Fatalf("expected 2 blobs, got %d: %+v", len(blobs), blobs)
	}

	square := blobs[0]
	if square.Bounds != image.Rect(10, 10, 30, 30) {
		t.Errorf("square bounds = %v", square.Bounds)
	}
	if square.Area != 400 {
		t.Errorf("square area = %d, want 400", square.Area)
	}
	if math.Abs(square.Centroid.X-19.5) > 1e-9 || math.Abs(square.Centroid.Y-19.5) > 1e-9 {
		t.Errorf("square centroid = %v, want (19.5,19.5)", square.Centroid)
	}

	bar := blobs[1]
	if bar.Bounds.Dx() != 40 || bar.Bounds.Dy() != 20 {
		t.Errorf("bar size = %dx%d, want 40x20", bar.Bounds.Dx(), bar.Bounds.Dy())
	}
	if bar.Center() != bar.Centroid {
		t.Error("Center should return the centroid")
	}
}

func TestDetectBlobs_SizeFilter(t *testing.T) {
	img := newDarkImage(300, 120)
	fillRect(img, 10, 10, 35, 35, 255)    // 25x25: alignment sized
	fillRect(img, 100, 10, 150, 40, 255)  // 50x30: answer sized
	fillRect(img, 200, 10, 290, 110, 255) // 90x100: too big for both

	plus := DetectBlobs(img, SizeFilter{MinWidth: 15, MaxWidth: 35, MinHeight: 15, MaxHeight: 35}, 0)
	if len(plus) != 1 || plus[0].Bounds.Min.X != 10 {
		t.Errorf("alignment filter: got %+v", plus)
	}

	marks := DetectBlobs(img, SizeFilter{MinWidth: 25, MaxWidth: 80, MinHeight: 12, MaxHeight: 50}, 0)
	if len(marks) != 2 {
		t.Fatalf("answer filter: expected 2 blobs, got %d", len(marks))
	}
	if marks[0].Bounds.Min.X != 10 || marks[1].Bounds.Min.X != 100 {
		t.Errorf("answer filter: got %+v", marks)
	}
}

func TestDetectBlobs_BackgroundThreshold(t *testing.T) {
	img := newDarkImage(100, 50)
	fillRect(img, 10, 10, 40, 30, 60)  // faint smudge
	fillRect(img, 60, 10, 90, 30, 220) // filled bubble

	all := DetectBlobs(img, SizeFilter{}, 0)
	if len(all) != 2 {
		t.Errorf("background 0: expected 2 blobs, got %d", len(all))
	}

	strong := DetectBlobs(img, SizeFilter{}, 85)
	if len(strong) != 1 || strong[0].Bounds.Min.X != 60 {
		t.Errorf("background 85: got %+v", strong)
	}

	if got := DetectBlobs(img, SizeFilter{}, 255); got != nil {
		t.Errorf("background 255 leaves no foreground, got %+v", got)
	}
}

func TestDetectBlobs_DiagonalConnectivity(t *testing.T) {
	img := newDarkImage(20, 20)
	for i := 2; i < 12; i++ {
		img.SetGray(i, i, color.Gray{Y: 255})
	}

	blobs := DetectBlobs(img, SizeFilter{}, 0)
	if len(blobs) != 1 {
		t.Fatalf("diagonal line should be one 8-connected blob, got %d", len(blobs))
	}
	if blobs[0].Area != 10 {
		t.Errorf("area = %d, want 10", blobs[0].Area)
	}
}

func TestDetectBlobs_EmptyImage(t *testing.T) {
	if got := DetectBlobs(newDarkImage(50, 50), SizeFilter{}, 0); len(got) != 0 {
		t.Errorf("expected no blobs, got %d", len(got))
	}
}

func TestDetectBlobs_LargeRegion(t *testing.T) {
	img := newDarkImage(600, 600)
	fillRect(img, 0, 0, 600, 600, 255)

	blobs := DetectBlobs(img, SizeFilter{}, 0)
	if len(blobs) != 1 || blobs[0].Area != 600*600 {
		t.Errorf("full-frame region: got %d blobs", len(blobs))
	}
}
