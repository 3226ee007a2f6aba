// Package detection finds the marks printed and pencilled on an answer sheet.
//
// It provides two primitives used by the scanner pipeline:
//
//   - DetectBlobs: connected-component analysis over an inverted grayscale
//     page, returning the bounding box, area and centroid of every region
//     whose size passes a SizeFilter.
//   - EstimateSkewAngle: a projection-profile search for the tilt of the
//     printed rows.
//
// # Input Convention
//
// Both functions expect an inverted page: ink is light, paper is dark. The
// scanner inverts and converts to grayscale before calling in.
//
// # Coordinate System
//
// Coordinates follow the image convention with the origin at the top-left
// corner. Blob bounds use an inclusive Min and exclusive Max; centroids are
// the mean of the member pixel coordinates.
package detection
