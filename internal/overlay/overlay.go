package overlay

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/sheet-scanner/internal/geometry"
	"github.com/ironsheep/sheet-scanner/internal/imaging"
)

const (
	// AlignmentMarkerSize is the side of the square drawn on alignment marks.
	AlignmentMarkerSize = 10

	// ConfirmedMarkerSize is the side of the square drawn on confirmed marks.
	ConfirmedMarkerSize = 20
)

// Palette holds the marker colours.
type Palette struct {
	Left      colorful.Color
	Right     colorful.Color
	Confirmed colorful.Color
	Label     colorful.Color
}

// DefaultPalette returns green, red, orange and blue.
func DefaultPalette() Palette {
	return Palette{
		Left:      colorful.Color{R: 0, G: 1, B: 0},
		Right:     colorful.Color{R: 1, G: 0, B: 0},
		Confirmed: colorful.Color{R: 1, G: 165.0 / 255, B: 0},
		Label:     colorful.Color{R: 0, G: 0, B: 1},
	}
}

// ParsePalette builds a palette from hex strings. Empty strings keep the
// default colour for that role.
func ParsePalette(left, right, confirmed, label string) (Palette, error) {
	p := DefaultPalette()
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"left", left, &p.Left},
		{"right", right, &p.Right},
		{"confirmed", confirmed, &p.Confirmed},
		{"label", label, &p.Label},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("invalid %s colour %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Scene lists what to draw. Labels[i] annotates Confirmed[i]; missing or
// empty labels draw no text.
type Scene struct {
	Left      []geometry.IntPoint
	Right     []geometry.IntPoint
	Confirmed []geometry.IntPoint
	Labels    []string
}

// Render draws scene over a copy of img.
func Render(img image.Image, scene Scene, palette Palette) *image.RGBA {
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	for _, p := range scene.Left {
		drawMarker(canvas, p, AlignmentMarkerSize, toRGBA(palette.Left))
	}
	for _, p := range scene.Right {
		drawMarker(canvas, p, AlignmentMarkerSize, toRGBA(palette.Right))
	}

	fg := toRGBA(palette.Label)
	bg := toRGBA(palette.Label.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.85))
	for i, p := range scene.Confirmed {
		drawMarker(canvas, p, ConfirmedMarkerSize, toRGBA(palette.Confirmed))
		if i < len(scene.Labels) && scene.Labels[i] != "" {
			drawLabel(canvas, p.X+ConfirmedMarkerSize/2+3, p.Y-ConfirmedMarkerSize/2, scene.Labels[i], fg, bg)
		}
	}
	return canvas
}

// Save writes the rendered image to path; the format follows the extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

// Encoded is a rendered overlay ready for a JSON response.
type Encoded struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Encode converts img to base64 PNG.
func Encode(img image.Image) (*Encoded, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &Encoded{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawMarker fills a size x size square centred on p, clipped to the canvas.
func drawMarker(img *image.RGBA, p geometry.IntPoint, size int, c color.RGBA) {
	half := size / 2
	rect := image.Rect(p.X-half, p.Y-half, p.X-half+size, p.Y-half+size).Intersect(img.Bounds())
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawLabel writes text with its top-left corner at (x, y) over a filled
// background box.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + face.Ascent)},
	}

	width := d.MeasureString(text).Ceil()
	box := image.Rect(x-1, y-1, x+width+1, y+face.Height+1).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Src)

	d.DrawString(text)
}
