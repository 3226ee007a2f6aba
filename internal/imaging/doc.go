// Package imaging wraps the raster operations the scanner pipeline needs.
//
// Decoding, rotation, resizing, cropping and encoding go through
// disintegration/imaging; inversion and grayscale conversion go through
// bild. All functions take and return standard image.Image values and never
// mutate their input.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Rectangles follow the
// image.Rectangle convention: Min is inclusive, Max is exclusive.
//
// # Rotation
//
// Rotate turns an image counter-clockwise by the given angle and grows the
// canvas to fit. Deskewing rotates by the negated skew estimate, so a page
// tilted counter-clockwise by 3 degrees is rotated clockwise by 3 degrees.
// ShouldDeskew rejects estimates beyond MaxDeskewAngle.
//
// # Exposure
//
// MeasureExposure summarizes the tonal range of a sheet (mean luminance,
// contrast, ink coverage and the dominant paper tone) so callers can pick a
// detection profile before scanning. Statistics come from gonum; tones are
// reported as hex via go-colorful.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The transform functions are
// stateless and may run concurrently on different images.
package imaging
