package imaging

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// maxExposureSamples bounds the pixels read by MeasureExposure; larger
// images are sampled on a regular grid.
const maxExposureSamples = 250000

// inkLevel is the grey level below which a pixel counts as ink.
const inkLevel = 128

// Exposure summarizes the tonal range of a sheet before scanning. Faint
// pencil and dim phone photos show up as low contrast and a small ink
// fraction, which is what the "faded" profile is tuned for.
type Exposure struct {
	// MeanLuminance is the average grey level, 0-255.
	MeanLuminance float64 `json:"mean_luminance"`

	// Contrast is the standard deviation of the grey levels.
	Contrast float64 `json:"contrast"`

	// InkFraction is the share of pixels darker than mid-grey, 0-1.
	InkFraction float64 `json:"ink_fraction"`

	// PaperTone is the most common colour, quantized, as "#rrggbb".
	PaperTone string `json:"paper_tone"`
}

// MeasureExposure computes tonal statistics over img, or over region when it
// is non-nil. The region is clipped to the image bounds.
func MeasureExposure(img image.Image, region *image.Rectangle) Exposure {
	bounds := img.Bounds()
	if region != nil {
		bounds = region.Intersect(bounds)
	}
	if bounds.Empty() {
		return Exposure{}
	}

	step := 1
	if pixels := bounds.Dx() * bounds.Dy(); pixels > maxExposureSamples {
		step = int(math.Ceil(math.Sqrt(float64(pixels) / maxExposureSamples)))
	}

	levels := make([]float64, 0, (bounds.Dx()/step+1)*(bounds.Dy()/step+1))
	tones := make(map[color.RGBA]int)
	ink := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := img.At(x, y)
			g := color.GrayModel.Convert(c).(color.Gray).Y
			levels = append(levels, float64(g))
			if g < inkLevel {
				ink++
			}

			// Quantize to group similar tones
			r, gr, b, _ := c.RGBA()
			key := color.RGBA{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((gr >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
				A: 255,
			}
			tones[key]++
		}
	}

	mean, std := stat.MeanStdDev(levels, nil)
	if len(levels) < 2 {
		std = 0
	}

	return Exposure{
		MeanLuminance: mean,
		Contrast:      std,
		InkFraction:   float64(ink) / float64(len(levels)),
		PaperTone:     dominantTone(tones),
	}
}

// dominantTone returns the most frequent tone; ties go to the brighter one.
func dominantTone(tones map[color.RGBA]int) string {
	type tone struct {
		c     color.RGBA
		count int
	}
	ranked := make([]tone, 0, len(tones))
	for c, n := range tones {
		ranked = append(ranked, tone{c, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		a, b := ranked[i].c, ranked[j].c
		return int(a.R)+int(a.G)+int(a.B) > int(b.R)+int(b.G)+int(b.B)
	})

	cf, _ := colorful.MakeColor(ranked[0].c)
	return cf.Hex()
}
