package scanner

import (
	"sort"

	"github.com/ironsheep/sheet-scanner/internal/align"
	"github.com/ironsheep/sheet-scanner/internal/config"
	"github.com/ironsheep/sheet-scanner/internal/geometry"
	"github.com/ironsheep/sheet-scanner/internal/grid"
)

// SplitAlignment groups alignment mark centroids of a page width pixels
// wide into left and right margin columns, applying the profile's band and
// threshold.
func SplitAlignment(marks []geometry.Point, width int, profile config.Profile) align.Columns {
	return align.SplitColumns(marks, width, profile.AlignmentBand, profile.Threshold)
}

// ConfirmMarks keeps the answer marks that lie on an alignment row and
// returns them sorted top to bottom, left to right on equal rows.
func ConfirmMarks(cols align.Columns, marks []geometry.Point, width, threshold int) []geometry.IntPoint {
	confirmed := align.ConfirmMarks(cols, marks, width, threshold)
	SortPoints(confirmed)
	return confirmed
}

// SortPoints orders points by Y, then X. Equal points keep their order.
func SortPoints(points []geometry.IntPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
}

// Decode reads the candidate number from the first digits points and
// classifies the remaining points into a columns-wide layout.
func Decode(points []geometry.IntPoint, digits, columns int) (*Result, error) {
	cols, err := grid.NewColumns(columns)
	if err != nil {
		return nil, err
	}

	number, rest, err := grid.CandidateNumber(points, digits)
	if err != nil {
		return nil, err
	}

	for _, p := range rest {
		if err := cols.Add(p); err != nil {
			return nil, err
		}
	}

	return &Result{
		CandidateNumber: number,
		Answers:         cols.Flatten(),
		Columns:         cols.Summary(),
	}, nil
}

// Labels returns the decoded symbol of every point for the debug overlay.
// Points that cannot be decoded get an empty label.
func Labels(points []geometry.IntPoint, digits, columns int) []string {
	labels := make([]string, len(points))
	cols, err := grid.NewColumns(columns)
	if err != nil {
		return labels
	}

	for i, p := range points {
		if i < digits {
			labels[i], _ = grid.Digit(p.X)
			continue
		}
		if _, letter, err := cols.Classify(p); err == nil {
			labels[i] = letter
		}
	}
	return labels
}
