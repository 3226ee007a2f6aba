// Package grid maps confirmed mark positions on a rectified sheet to answer
// letters and candidate-number digits.
//
// A sheet is printed with 1, 2 or 4 answer columns. Each column is identified
// by its left offset in the canonical 1250x1900 image; option bubbles inside
// a column are MarkPitch pixels apart, so the option index of a mark is
// (x - offset) / MarkPitch. Layouts declare their columns right to left and
// classification takes the first column whose offset lies left of the mark.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/sheet-scanner/internal/geometry"
)

const (
	// MarkPitch is the distance in pixels between adjacent bubble centres.
	MarkPitch = 52

	// CandidateAnchorX is the left edge of the candidate-number grid.
	CandidateAnchorX = 700
)

var (
	// ErrUnsupportedColumns is returned for a column count without a layout.
	ErrUnsupportedColumns = errors.New("unsupported column count")

	// ErrUnclassifiable is matched by every *ClassificationError.
	ErrUnclassifiable = errors.New("mark outside all answer columns")

	// ErrCandidateDigits is returned when the candidate number cannot be read.
	ErrCandidateDigits = errors.New("invalid candidate number")
)

// layouts holds the column offsets per supported column count, in the order
// classification scans them.
var layouts = map[int][]int{
	1: {112},
	2: {965, 680},
	4: {965, 680, 398, 118},
}

// SupportedColumnCounts lists the column counts with a known layout.
func SupportedColumnCounts() []int {
	return []int{1, 2, 4}
}

// Offsets returns the declared column offsets for count.
func Offsets(count int) ([]int, error) {
	offsets, ok := layouts[count]
	if !ok {
		return nil, fmt.Errorf("%w: %d (want 1, 2 or 4)", ErrUnsupportedColumns, count)
	}
	out := make([]int, len(offsets))
	copy(out, offsets)
	return out, nil
}

// ClassificationError reports a mark that no column offset lies left of.
type ClassificationError struct {
	Point geometry.IntPoint
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("no answer column for mark at (%d,%d)", e.Point.X, e.Point.Y)
}

// Is lets errors.Is match ErrUnclassifiable.
func (e *ClassificationError) Is(target error) bool {
	return target == ErrUnclassifiable
}

// Column collects the answers decoded for one printed column.
type Column struct {
	Offset  int
	Answers []string
}

// ColumnAnswers is the exported view of a Column in a result.
type ColumnAnswers struct {
	Offset  int      `json:"offset"`
	Answers []string `json:"answers"`
}

// Columns is an ordered column layout.
type Columns []*Column

// NewColumns builds the layout for count columns.
func NewColumns(count int) (Columns, error) {
	offsets, err := Offsets(count)
	if err != nil {
		return nil, err
	}
	cols := make(Columns, 0, len(offsets))
	for _, off := range offsets {
		cols = append(cols, &Column{Offset: off})
	}
	return cols, nil
}

// Classify finds the column for p and decodes its answer letter.
func (cs Columns) Classify(p geometry.IntPoint) (*Column, string, error) {
	for _, c := range cs {
		if c.Offset < p.X {
			return c, Letter(p.X, c.Offset), nil
		}
	}
	return nil, "", &ClassificationError{Point: p}
}

// Add classifies p and appends its letter to the matching column.
func (cs Columns) Add(p geometry.IntPoint) error {
	col, letter, err := cs.Classify(p)
	if err != nil {
		return err
	}
	col.Answers = append(col.Answers, letter)
	return nil
}

// Flatten returns all answers, column by column in declaration order.
func (cs Columns) Flatten() []string {
	answers := make([]string, 0)
	for _, c := range cs {
		answers = append(answers, c.Answers...)
	}
	return answers
}

// Summary returns a copy of every column's answers.
func (cs Columns) Summary() []ColumnAnswers {
	out := make([]ColumnAnswers, 0, len(cs))
	for _, c := range cs {
		answers := make([]string, len(c.Answers))
		copy(answers, c.Answers)
		out = append(out, ColumnAnswers{Offset: c.Offset, Answers: answers})
	}
	return out
}

// Letter decodes the option letter of a mark at x in a column starting at
// offset.
func Letter(x, offset int) string {
	return string(rune('A' + pitchIndex(x, offset)))
}

// Digit decodes the candidate-number digit of a mark at x. ok is false when
// the mark lies outside the ten digit positions.
func Digit(x int) (string, bool) {
	idx := pitchIndex(x, CandidateAnchorX)
	if idx < 0 || idx > 9 {
		return "", false
	}
	return string(rune('0' + idx)), true
}

func pitchIndex(x, offset int) int {
	return int(math.Floor(float64(x-offset) / MarkPitch))
}

// CandidateNumber reads the first digits points as the candidate number and
// returns the remaining points.
func CandidateNumber(points []geometry.IntPoint, digits int) (string, []geometry.IntPoint, error) {
	if digits < 0 {
		return "", nil, fmt.Errorf("%w: negative digit count %d", ErrCandidateDigits, digits)
	}
	if len(points) < digits {
		return "", nil, fmt.Errorf("%w: found %d marks for %d digits", ErrCandidateDigits, len(points), digits)
	}

	number := make([]byte, 0, digits)
	for _, p := range points[:digits] {
		d, ok := Digit(p.X)
		if !ok {
			return "", nil, fmt.Errorf("%w: mark at (%d,%d) is not a digit position", ErrCandidateDigits, p.X, p.Y)
		}
		number = append(number, d...)
	}
	return string(number), points[digits:], nil
}
