package detection

import (
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/sheet-scanner/internal/geometry"
)

// SizeFilter bounds the bounding-box dimensions of accepted blobs.
//
// Limits are inclusive. A zero maximum leaves that dimension unbounded.
type SizeFilter struct {
	MinWidth  int `json:"min_width" yaml:"min_width"`
	MaxWidth  int `json:"max_width" yaml:"max_width"`
	MinHeight int `json:"min_height" yaml:"min_height"`
	MaxHeight int `json:"max_height" yaml:"max_height"`
}

// Accepts reports whether a blob of the given size passes the filter.
func (f SizeFilter) Accepts(width, height int) bool {
	if width < f.MinWidth || height < f.MinHeight {
		return false
	}
	if f.MaxWidth > 0 && width > f.MaxWidth {
		return false
	}
	if f.MaxHeight > 0 && height > f.MaxHeight {
		return false
	}
	return true
}

// Blob is a connected region of foreground pixels.
type Blob struct {
	// Bounds is the bounding box, Max exclusive.
	Bounds image.Rectangle `json:"bounds"`

	// Centroid is the mean position of the blob's pixels.
	Centroid geometry.Point `json:"centroid"`

	// Area is the number of pixels in the blob.
	Area int `json:"area"`
}

// Center returns the centroid.
func (b Blob) Center() geometry.Point {
	return b.Centroid
}

// DetectBlobs finds 8-connected regions of pixels brighter than background.
//
// The image is binarized with the threshold, connected foreground pixels are
// grouped with an iterative flood fill, and groups whose bounding box fails
// filter are dropped. Blobs are returned in raster order of their first
// pixel (top to bottom, then left to right).
//
// Expects light marks on a dark background, i.e. an inverted scan.
func DetectBlobs(img image.Image, filter SizeFilter, background uint8) []Blob {
	if background == 255 {
		return nil
	}

	mask := segment.Threshold(img, background+1)
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	visited := make([]bool, width*height)
	blobs := make([]Blob, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if visited[idx] || mask.Pix[y*mask.Stride+x] == 0 {
				continue
			}
			region := fillRegion(mask, visited, x, y, width, height)
			if !filter.Accepts(region.width(), region.height()) {
				continue
			}
			blobs = append(blobs, region.blob(bounds.Min))
		}
	}

	return blobs
}

// region accumulates the statistics of one connected component.
type region struct {
	minX, minY, maxX, maxY int
	sumX, sumY             int
	count                  int
}

func (r *region) width() int  { return r.maxX - r.minX + 1 }
func (r *region) height() int { return r.maxY - r.minY + 1 }

func (r *region) blob(origin image.Point) Blob {
	return Blob{
		Bounds: image.Rect(r.minX, r.minY, r.maxX+1, r.maxY+1).Add(origin),
		Centroid: geometry.Pt(
			float64(r.sumX)/float64(r.count)+float64(origin.X),
			float64(r.sumY)/float64(r.count)+float64(origin.Y),
		),
		Area: r.count,
	}
}

// fillRegion flood-fills the component containing (startX, startY).
//
// Uses an explicit stack so large regions (rotation fill, page borders)
// cannot overflow the goroutine stack.
func fillRegion(mask *image.Gray, visited []bool, startX, startY, width, height int) region {
	r := region{minX: startX, minY: startY, maxX: startX, maxY: startY}
	stack := []image.Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r.count++
		r.sumX += p.X
		r.sumY += p.Y
		r.minX = min(r.minX, p.X)
		r.maxX = max(r.maxX, p.X)
		r.minY = min(r.minY, p.Y)
		r.maxY = max(r.maxY, p.Y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				idx := ny*width + nx
				if visited[idx] || mask.Pix[ny*mask.Stride+nx] == 0 {
					continue
				}
				visited[idx] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return r
}
