package align

import "github.com/ironsheep/sheet-scanner/internal/geometry"

// MatchRow reports whether mark lies on the row of any reference point.
//
// Each reference seeds a fresh Y-keyed set that never resets; the first
// reference whose row accepts the mark wins and the mark's rounded position
// is returned.
func MatchRow(refs []geometry.IntPoint, mark geometry.Point, threshold int) (geometry.IntPoint, bool) {
	for _, ref := range refs {
		row := NewSet(geometry.AxisY, ResetNone, threshold)
		row.Init(ref.ToFloat())
		if row.Add(mark) {
			return mark.Round(), true
		}
	}
	return geometry.IntPoint{}, false
}

// Columns holds the alignment points of the left and right sheet margins.
type Columns struct {
	Left  []geometry.IntPoint `json:"left"`
	Right []geometry.IntPoint `json:"right"`
}

// Band restricts alignment marks to a vertical range. Marks at or outside
// the limits are ignored, which keeps header and footer artwork out of the
// margin columns.
type Band struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	MinY    int  `json:"min_y" yaml:"min_y"`
	MaxY    int  `json:"max_y" yaml:"max_y"`
}

// Contains reports whether y lies strictly inside the band. A disabled band
// contains everything.
func (b Band) Contains(y float64) bool {
	if !b.Enabled {
		return true
	}
	return y > float64(b.MinY) && y < float64(b.MaxY)
}

// SplitColumns buckets alignment mark centroids into the left and right
// margin columns of an image width pixels wide.
//
// Marks left of the midline feed a ResetAnchorDecreases set and the others a
// ResetAnchorIncreases set, so each column settles on the outermost cluster.
func SplitColumns(marks []geometry.Point, width int, band Band, threshold int) Columns {
	left := NewSet(geometry.AxisX, ResetAnchorDecreases, threshold)
	right := NewSet(geometry.AxisX, ResetAnchorIncreases, threshold)
	mid := float64(width) / 2

	for _, m := range marks {
		if !band.Contains(m.Y) {
			continue
		}
		if m.X < mid {
			left.Add(m)
		} else {
			right.Add(m)
		}
	}

	return Columns{Left: left.Points(), Right: right.Points()}
}

// ConfirmMarks returns the answer marks that sit on an alignment row.
//
// A mark right of the midline is tested against the right column, any
// other mark against the left column. The result keeps detection order.
func ConfirmMarks(cols Columns, marks []geometry.Point, width int, threshold int) []geometry.IntPoint {
	mid := float64(width) / 2
	confirmed := make([]geometry.IntPoint, 0, len(marks))

	for _, m := range marks {
		refs := cols.Left
		if m.X > mid {
			refs = cols.Right
		}
		if p, ok := MatchRow(refs, m, threshold); ok {
			confirmed = append(confirmed, p)
		}
	}
	return confirmed
}
