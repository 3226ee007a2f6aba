package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestMeasureExposure_Uniform(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = 200
	}

	e := MeasureExposure(img, nil)
	if e.MeanLuminance != 200 {
		t.Errorf("MeanLuminance = %v, want 200", e.MeanLuminance)
	}
	if e.Contrast != 0 {
		t.Errorf("Contrast = %v, want 0", e.Contrast)
	}
	if e.InkFraction != 0 {
		t.Errorf("InkFraction = %v, want 0", e.InkFraction)
	}
	if e.PaperTone != "#c0c0c0" {
		t.Errorf("PaperTone = %s, want #c0c0c0", e.PaperTone)
	}
}

func TestMeasureExposure_HalfInk(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x >= 5 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	e := MeasureExposure(img, nil)
	if math.Abs(e.MeanLuminance-127.5) > 1e-9 {
		t.Errorf("MeanLuminance = %v, want 127.5", e.MeanLuminance)
	}
	if math.Abs(e.InkFraction-0.5) > 1e-9 {
		t.Errorf("InkFraction = %v, want 0.5", e.InkFraction)
	}
	if e.Contrast < 120 {
		t.Errorf("Contrast = %v, want a high spread", e.Contrast)
	}
	// Equal counts: the brighter tone wins.
	if e.PaperTone != "#f0f0f0" {
		t.Errorf("PaperTone = %s, want #f0f0f0", e.PaperTone)
	}
}

func TestMeasureExposure_Region(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	right := image.Rect(10, 0, 40, 20)
	e := MeasureExposure(img, &right)
	if e.MeanLuminance != 255 || e.InkFraction != 0 {
		t.Errorf("right half: %+v", e)
	}

	outside := image.Rect(50, 50, 60, 60)
	if got := MeasureExposure(img, &outside); got != (Exposure{}) {
		t.Errorf("region outside image: %+v", got)
	}
}

func TestMeasureExposure_LargeImageSampled(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1250, 1900))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	e := MeasureExposure(img, nil)
	if e.MeanLuminance != 255 {
		t.Errorf("MeanLuminance = %v, want 255", e.MeanLuminance)
	}
}
