package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/sheet-scanner/internal/align"
	"github.com/ironsheep/sheet-scanner/internal/detection"
)

// DefaultProfile is the profile used when none is named.
const DefaultProfile = "standard"

// ErrUnknownProfile is returned when a profile name matches neither a
// built-in nor a configured profile.
var ErrUnknownProfile = errors.New("unknown profile")

// Palette holds the debug overlay colours as "#RRGGBB" strings.
type Palette struct {
	Left      string `json:"left" yaml:"left"`
	Right     string `json:"right" yaml:"right"`
	Confirmed string `json:"confirmed" yaml:"confirmed"`
	Label     string `json:"label" yaml:"label"`
}

// Profile bundles the tuning values that differ between sheet printings and
// capture conditions.
type Profile struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// CalibrationBlobs selects the corner calibration marks.
	CalibrationBlobs detection.SizeFilter `json:"calibration_blobs" yaml:"calibration_blobs"`

	// AlignmentBlobs selects the "+" marks printed down both margins.
	AlignmentBlobs detection.SizeFilter `json:"alignment_blobs" yaml:"alignment_blobs"`

	// MarkBackground is the background grey level for calibration and
	// alignment detection on the inverted page.
	MarkBackground uint8 `json:"mark_background" yaml:"mark_background"`

	// AnswerBlobs selects pencilled answer marks.
	AnswerBlobs detection.SizeFilter `json:"answer_blobs" yaml:"answer_blobs"`

	// AnswerBackground is the grey level at or below which pixels are
	// treated as paper when detecting answer marks on the inverted page.
	AnswerBackground uint8 `json:"answer_background" yaml:"answer_background"`

	// AlignmentBand limits alignment marks to the answer area.
	AlignmentBand align.Band `json:"alignment_band" yaml:"alignment_band"`

	// Threshold is the pixel tolerance for column and row grouping.
	Threshold int `json:"threshold" yaml:"threshold"`

	Palette Palette `json:"palette" yaml:"palette"`
}

var defaultPalette = Palette{
	Left:      "#00FF00",
	Right:     "#FF0000",
	Confirmed: "#FFA500",
	Label:     "#0000FF",
}

var builtins = map[string]Profile{
	"standard": {
		Name:             "standard",
		Description:      "Flatbed scans of the printed sheet",
		CalibrationBlobs: detection.SizeFilter{MinWidth: 30, MaxWidth: 80, MinHeight: 30, MaxHeight: 80},
		AlignmentBlobs:   detection.SizeFilter{MinWidth: 15, MaxWidth: 35, MinHeight: 15, MaxHeight: 35},
		AnswerBlobs:      detection.SizeFilter{MinWidth: 25, MaxWidth: 80, MinHeight: 12, MaxHeight: 50},
		AnswerBackground: 85,
		AlignmentBand:    align.Band{Enabled: true, MinY: 150, MaxY: 1700},
		Threshold:        align.DefaultThreshold,
		Palette:          defaultPalette,
	},
	"faded": {
		Name:             "faded",
		Description:      "Phone photos and light pencil, no vertical band",
		CalibrationBlobs: detection.SizeFilter{MinWidth: 25, MaxWidth: 90, MinHeight: 25, MaxHeight: 90},
		AlignmentBlobs:   detection.SizeFilter{MinWidth: 12, MaxWidth: 40, MinHeight: 12, MaxHeight: 40},
		AnswerBlobs:      detection.SizeFilter{MinWidth: 20, MaxWidth: 80, MinHeight: 10, MaxHeight: 50},
		MarkBackground:   30,
		AnswerBackground: 60,
		Threshold:        align.DefaultThreshold,
		Palette:          defaultPalette,
	},
}

// Builtin returns the built-in profile called name.
func Builtin(name string) (Profile, bool) {
	p, ok := builtins[name]
	return p, ok
}

// Builtins returns all built-in profiles sorted by name.
func Builtins() []Profile {
	out := make([]Profile, 0, len(builtins))
	for _, p := range builtins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Validate checks that the profile can drive a scan.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Threshold <= 0 {
		return fmt.Errorf("profile %s: threshold must be positive", p.Name)
	}
	filters := []struct {
		field  string
		filter detection.SizeFilter
	}{
		{"calibration_blobs", p.CalibrationBlobs},
		{"alignment_blobs", p.AlignmentBlobs},
		{"answer_blobs", p.AnswerBlobs},
	}
	for _, f := range filters {
		if err := validateFilter(f.filter); err != nil {
			return fmt.Errorf("profile %s: %s: %w", p.Name, f.field, err)
		}
	}
	if p.AlignmentBand.Enabled && p.AlignmentBand.MinY >= p.AlignmentBand.MaxY {
		return fmt.Errorf("profile %s: alignment_band min_y must be below max_y", p.Name)
	}
	colours := map[string]string{
		"left":      p.Palette.Left,
		"right":     p.Palette.Right,
		"confirmed": p.Palette.Confirmed,
		"label":     p.Palette.Label,
	}
	for field, hex := range colours {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("profile %s: palette.%s: %w", p.Name, field, err)
		}
	}
	return nil
}

func validateFilter(f detection.SizeFilter) error {
	if f.MinWidth < 0 || f.MinHeight < 0 || f.MaxWidth < 0 || f.MaxHeight < 0 {
		return fmt.Errorf("sizes must not be negative")
	}
	if f.MaxWidth > 0 && f.MaxWidth < f.MinWidth {
		return fmt.Errorf("max_width %d is below min_width %d", f.MaxWidth, f.MinWidth)
	}
	if f.MaxHeight > 0 && f.MaxHeight < f.MinHeight {
		return fmt.Errorf("max_height %d is below min_height %d", f.MaxHeight, f.MinHeight)
	}
	return nil
}
