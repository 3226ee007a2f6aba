// Package overlay renders the debug view of a scanned sheet.
//
// Render copies the rectified sheet onto an RGBA canvas and marks what the
// scanner found on it:
//
//   - left margin alignment marks as small squares (green by default)
//   - right margin alignment marks as small squares (red by default)
//   - confirmed answer marks as larger squares (orange by default), each
//     labelled with the digit or letter it decoded to
//
// Colours come from a Palette, normally parsed from the "#RRGGBB" strings of
// a tuning profile. The result can be written to disk with Save or returned
// inline as base64 PNG with Encode.
package overlay
