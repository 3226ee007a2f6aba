package imaging

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// Decode reads a raster image from r.
//
// JPEG, PNG, GIF, TIFF and BMP are supported. EXIF orientation is applied,
// so photographs taken with a rotated phone arrive upright.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Open decodes the image file at path.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// ImageCache provides thread-safe caching of decoded sheets keyed by path.
//
// The server mode keeps one cache for its lifetime so repeated tool calls on
// the same scan skip disk I/O and decoding. Cached images remain in memory
// until removed via Evict or Clear.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/scans/sheet-001.jpg")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// The image is cached under the exact path string provided; a relative and
// an absolute path to the same file are separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// SheetInfo describes a scanned sheet file before processing.
type SheetInfo struct {
	// Width is the image width in pixels after EXIF orientation.
	Width int `json:"width"`

	// Height is the image height in pixels after EXIF orientation.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// "tiff", "bmp" or "unknown".
	Format string `json:"format"`

	// Portrait is true when the sheet is taller than wide, as the canonical
	// layout expects.
	Portrait bool `json:"portrait"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`

	Exposure Exposure `json:"exposure"`
}

// LoadSheetInfo loads a sheet through the cache and reports its metadata.
func LoadSheetInfo(cache *ImageCache, path string) (*SheetInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := img.Bounds()
	return &SheetInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatFromPath(path),
		Portrait:      bounds.Dy() > bounds.Dx(),
		FileSizeBytes: stat.Size(),
		Exposure:      MeasureExposure(img, nil),
	}, nil
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".tif", ".tiff":
		return "tiff"
	case ".bmp":
		return "bmp"
	default:
		return "unknown"
	}
}

// IsSupported reports whether path has an extension Decode understands.
func IsSupported(path string) bool {
	return FormatFromPath(path) != "unknown"
}
