// Package align establishes the reference geometry of an answer sheet.
//
// Printed sheets carry two kinds of fiducials that this package works with:
//
//   - Calibration marks near the sheet corners. LocateCorners picks the marks
//     closest to the top-left and bottom-right of the canonical page and derives
//     the crop rectangle that normalizes the sheet.
//   - Alignment marks ("+" shapes) printed down the left and right margins at
//     every answer row. A Set groups their coordinates into a column, and
//     MatchRow tests whether an answer mark lies on one of their rows.
//
// # Tolerance Sets
//
// A Set buckets a stream of one-dimensional values (the X or Y coordinate of
// each point) around an anchor. A value is accepted when it lies within
// Threshold pixels of the anchor. The anchor is taken from the first value,
// and a ResetMode decides whether a later value replaces it:
//
//   - ResetNone keeps the first anchor forever.
//   - ResetAnchorDecreases moves the anchor to any value lying further left
//     (smaller) than the tolerance band, discarding everything accepted so far.
//   - ResetAnchorIncreases does the same for values further right.
//
// Feeding all left-half alignment marks into a ResetAnchorDecreases set makes
// it converge on the outermost column even when stray detections near the
// middle of the page arrive first.
//
// # Coordinates
//
// All coordinates are pixels in the rectified sheet image, origin top-left.
package align
