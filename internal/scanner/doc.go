// Package scanner turns a photographed or scanned answer sheet into a
// candidate number and answer letters.
//
// # Pipeline
//
// Scan runs these stages in order, each producing a new image:
//
//  1. Decode the input, invert it and convert to grayscale.
//  2. Estimate the skew angle and rotate by its negation with white fill,
//     unless the angle exceeds 45 degrees.
//  3. Resize to 1250x1900, locate the two corner calibration marks, crop to
//     them with a 20 pixel margin and resize to 1250x1900 again.
//  4. Detect the alignment marks and split them into left and right margin
//     columns (SplitAlignment).
//  5. Detect answer marks and keep those lying on an alignment row
//     (ConfirmMarks). Confirmed points are sorted top to bottom.
//  6. Read the candidate number from the first points and classify the
//     rest into answer columns (Decode).
//  7. Optionally render and save a debug overlay.
//
// Image operations go through the Backend interface. ImageBackend is the
// production implementation; tests substitute a fake that returns canned
// blobs.
//
// # Concurrency
//
// A Scanner holds no per-scan state. Concurrent calls to Scan are safe as
// long as the Backend is.
package scanner
