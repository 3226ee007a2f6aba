package imaging

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// createPatternImage creates a black image with a white block in the
// top-left quadrant, so rotations and crops are distinguishable.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x < width/4 && y < height/4 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func grayAt(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(((r + g + b) / 3) >> 8)
}

func TestInvert(t *testing.T) {
	img := createPatternImage(40, 40)
	inv := Invert(img)

	if grayAt(inv, 2, 2) != 0 {
		t.Errorf("white block should become black, got %d", grayAt(inv, 2, 2))
	}
	if grayAt(inv, 30, 30) != 255 {
		t.Errorf("black background should become white, got %d", grayAt(inv, 30, 30))
	}
	if inv.Bounds() != img.Bounds() {
		t.Errorf("bounds changed: %v", inv.Bounds())
	}
}

func TestGrayscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})

	gray := Grayscale(img)
	if _, ok := gray.(*image.Gray); !ok {
		t.Fatalf("Grayscale returned %T, want *image.Gray", gray)
	}
	if grayAt(gray, 1, 1) < 254 || grayAt(gray, 0, 0) != 0 {
		t.Errorf("unexpected values: %d / %d", grayAt(gray, 1, 1), grayAt(gray, 0, 0))
	}
}

func TestToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	gray.SetGray(3, 3, color.Gray{Y: 200})

	rgba := ToRGBA(gray)
	if rgba.Bounds() != gray.Bounds() {
		t.Errorf("bounds = %v", rgba.Bounds())
	}
	if got := rgba.RGBAAt(3, 3); got.R != 200 || got.G != 200 || got.B != 200 {
		t.Errorf("pixel = %v, want grey 200", got)
	}
}

func TestShouldDeskew(t *testing.T) {
	cases := map[float64]bool{
		0:    true,
		44:   true,
		45:   true,
		-45:  true,
		45.1: false,
		46:   false,
		-46:  false,
	}
	for angle, want := range cases {
		if got := ShouldDeskew(angle); got != want {
			t.Errorf("ShouldDeskew(%v) = %v, want %v", angle, got, want)
		}
	}
}

func TestRotate_NegatedAngleLevelsTilt(t *testing.T) {
	img := createPatternImage(100, 60)

	back := Rotate(img, -44, color.White).(*image.NRGBA)
	forth := Rotate(img, 44, color.White).(*image.NRGBA)
	if bytes.Equal(back.Pix, forth.Pix) {
		t.Error("opposite rotations should differ")
	}
	if back.Bounds().Dx() <= 100 {
		t.Errorf("rotated canvas should grow, got %v", back.Bounds())
	}
}

func TestRotate_WhiteFill(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 50, 50))
	out := Rotate(img, 30, color.White)

	if grayAt(out, 0, 0) != 255 {
		t.Errorf("corner uncovered by rotation should be white, got %d", grayAt(out, 0, 0))
	}
}

func TestResize(t *testing.T) {
	img := createPatternImage(100, 80)
	out := Resize(img, 1250, 1900)

	if out.Bounds() != image.Rect(0, 0, 1250, 1900) {
		t.Errorf("Resize bounds = %v", out.Bounds())
	}
	if grayAt(out, 100, 100) != 255 {
		t.Errorf("top-left block should stay white after resize")
	}
	if grayAt(out, 1000, 1500) != 0 {
		t.Errorf("background should stay black after resize")
	}
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	out, err := Crop(img, image.Rect(10, 10, 60, 40))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 50, 30) {
		t.Errorf("Crop bounds = %v, want 50x30 at origin", out.Bounds())
	}
	if grayAt(out, 5, 5) != 255 {
		t.Error("pixel (15,15) of the source should be white")
	}
}

func TestCrop_ClipsToBounds(t *testing.T) {
	img := createPatternImage(100, 100)

	out, err := Crop(img, image.Rect(-20, -20, 50, 50))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Errorf("Crop bounds = %v, want clipped 50x50", out.Bounds())
	}
}

func TestCrop_OutsideBounds(t *testing.T) {
	img := createPatternImage(100, 100)

	if _, err := Crop(img, image.Rect(200, 200, 300, 300)); err == nil {
		t.Error("expected error for crop outside the image")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.png")

	if err := Save(createPatternImage(20, 20), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved image: %v", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode saved image: %v", err)
	}
	if img.Bounds().Dx() != 20 {
		t.Errorf("saved width = %d, want 20", img.Bounds().Dx())
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.xyz")
	if err := Save(createPatternImage(4, 4), path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for invalid image data")
	}
}
