package scanner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ironsheep/sheet-scanner/internal/align"
	"github.com/ironsheep/sheet-scanner/internal/geometry"
	"github.com/ironsheep/sheet-scanner/internal/grid"
)

func TestSplitAlignment(t *testing.T) {
	marks := []geometry.Point{
		geometry.Pt(300, 400), // stray mark nearer the middle, arrives first
		geometry.Pt(100, 500),
		geometry.Pt(104, 600),
		geometry.Pt(100, 100), // above the band
		geometry.Pt(1100, 500),
		geometry.Pt(1095, 1800), // below the band
		geometry.Pt(1102, 700),
	}

	cols := SplitAlignment(marks, CanonicalWidth, standardProfile())

	wantLeft := []geometry.IntPoint{{X: 100, Y: 500}, {X: 104, Y: 600}}
	wantRight := []geometry.IntPoint{{X: 1100, Y: 500}, {X: 1102, Y: 700}}
	if !reflect.DeepEqual(cols.Left, wantLeft) {
		t.Errorf("Left = %v, want %v", cols.Left, wantLeft)
	}
	if !reflect.DeepEqual(cols.Right, wantRight) {
		t.Errorf("Right = %v, want %v", cols.Right, wantRight)
	}
}

func TestConfirmMarks_SortsByRow(t *testing.T) {
	cols := align.Columns{
		Left:  []geometry.IntPoint{{X: 100, Y: 600}, {X: 100, Y: 500}},
		Right: []geometry.IntPoint{{X: 1100, Y: 600}, {X: 1100, Y: 500}},
	}
	marks := []geometry.Point{
		geometry.Pt(800, 601),
		geometry.Pt(300, 499),
		geometry.Pt(1000, 601),
		geometry.Pt(400, 800), // off every row
		geometry.Pt(700, 601),
	}

	got := ConfirmMarks(cols, marks, CanonicalWidth, align.DefaultThreshold)
	want := []geometry.IntPoint{{X: 300, Y: 499}, {X: 700, Y: 601}, {X: 800, Y: 601}, {X: 1000, Y: 601}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConfirmMarks = %v, want %v", got, want)
	}
}

func TestSortPoints_Stable(t *testing.T) {
	points := []geometry.IntPoint{{X: 5, Y: 10}, {X: 3, Y: 2}, {X: 5, Y: 10}, {X: 1, Y: 10}}
	SortPoints(points)

	want := []geometry.IntPoint{{X: 3, Y: 2}, {X: 1, Y: 10}, {X: 5, Y: 10}, {X: 5, Y: 10}}
	if !reflect.DeepEqual(points, want) {
		t.Errorf("SortPoints = %v, want %v", points, want)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		points  []geometry.IntPoint
		digits  int
		columns int
		number  string
		answers []string
	}{
		{
			name:    "single column",
			points:  []geometry.IntPoint{{X: 130, Y: 300}, {X: 190, Y: 350}, {X: 250, Y: 400}},
			columns: 1,
			answers: []string{"A", "B", "C"},
		},
		{
			name:    "candidate digits then answers",
			points:  []geometry.IntPoint{{X: 700, Y: 200}, {X: 752, Y: 210}, {X: 804, Y: 220}, {X: 1000, Y: 400}},
			digits:  3,
			columns: 2,
			number:  "012",
			answers: []string{"A"},
		},
		{
			name:    "four columns flatten right to left",
			points:  []geometry.IntPoint{{X: 130, Y: 300}, {X: 420, Y: 300}, {X: 700, Y: 300}, {X: 1000, Y: 300}},
			columns: 4,
			answers: []string{"A", "A", "A", "A"},
		},
		{
			name:    "no marks",
			columns: 2,
			answers: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.points, tt.digits, tt.columns)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if result.CandidateNumber != tt.number {
				t.Errorf("CandidateNumber = %q, want %q", result.CandidateNumber, tt.number)
			}
			if !reflect.DeepEqual(result.Answers, tt.answers) {
				t.Errorf("Answers = %v, want %v", result.Answers, tt.answers)
			}
		})
	}
}

func TestDecode_ColumnsView(t *testing.T) {
	points := []geometry.IntPoint{{X: 130, Y: 300}, {X: 1000, Y: 310}, {X: 740, Y: 320}, {X: 420, Y: 330}}

	result, err := Decode(points, 0, 4)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []grid.ColumnAnswers{
		{Offset: 965, Answers: []string{"A"}},
		{Offset: 680, Answers: []string{"B"}},
		{Offset: 398, Answers: []string{"A"}},
		{Offset: 118, Answers: []string{"A"}},
	}
	if !reflect.DeepEqual(result.Columns, want) {
		t.Errorf("Columns = %+v, want %+v", result.Columns, want)
	}
	if !reflect.DeepEqual(result.Answers, []string{"A", "B", "A", "A"}) {
		t.Errorf("Answers = %v", result.Answers)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		points  []geometry.IntPoint
		digits  int
		columns int
		want    error
	}{
		{"bad layout", nil, 0, 5, grid.ErrUnsupportedColumns},
		{"left of every column", []geometry.IntPoint{{X: 50, Y: 300}}, 0, 2, grid.ErrUnclassifiable},
		{"too few digits", []geometry.IntPoint{{X: 700, Y: 300}}, 2, 1, grid.ErrCandidateDigits},
		{"digit out of range", []geometry.IntPoint{{X: 1300, Y: 300}}, 1, 1, grid.ErrCandidateDigits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.points, tt.digits, tt.columns)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	points := []geometry.IntPoint{{X: 752, Y: 200}, {X: 1000, Y: 400}, {X: 50, Y: 410}, {X: 740, Y: 420}}

	got := Labels(points, 1, 2)
	want := []string{"1", "A", "", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels = %v, want %v", got, want)
	}

	if got := Labels(points, 0, 3); len(got) != 4 || got[0] != "" {
		t.Errorf("unsupported layout should give empty labels, got %v", got)
	}
}
