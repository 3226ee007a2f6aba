package scanner

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/ironsheep/sheet-scanner/internal/align"
	"github.com/ironsheep/sheet-scanner/internal/config"
	"github.com/ironsheep/sheet-scanner/internal/geometry"
	"github.com/ironsheep/sheet-scanner/internal/grid"
	"github.com/ironsheep/sheet-scanner/internal/imaging"
	"github.com/ironsheep/sheet-scanner/internal/overlay"
)

const (
	// CanonicalWidth is the width of the rectified sheet in pixels.
	CanonicalWidth = 1250

	// CanonicalHeight is the height of the rectified sheet in pixels.
	CanonicalHeight = 1900

	// CornerMargin keeps the corner search away from the image edges and
	// pads the crop around the calibration marks.
	CornerMargin = align.DefaultEdgeMargin
)

// ErrInvalidOptions is returned for options rejected before any image work.
var ErrInvalidOptions = errors.New("invalid scan options")

// Options controls a single scan.
type Options struct {
	// CandidateDigits is the length of the candidate number. Zero skips it.
	CandidateDigits int

	// Columns is the number of printed answer columns: 1, 2 or 4.
	Columns int

	// Debug renders an overlay of the detected marks to DebugPath.
	Debug bool

	// DebugPath is the overlay destination. The extension picks the format.
	DebugPath string

	// Profile holds the tuning values. The zero value selects the
	// built-in default profile.
	Profile config.Profile
}

func (o Options) profile() (config.Profile, error) {
	if o.Profile.Name == "" {
		p, _ := config.Builtin(config.DefaultProfile)
		return p, nil
	}
	if err := o.Profile.Validate(); err != nil {
		return config.Profile{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return o.Profile, nil
}

func (o Options) validate() error {
	if o.CandidateDigits < 0 {
		return fmt.Errorf("%w: candidate digits must not be negative, got %d", ErrInvalidOptions, o.CandidateDigits)
	}
	if _, err := grid.Offsets(o.Columns); err != nil {
		return err
	}
	return nil
}

// Result is the decoded content of one sheet.
type Result struct {
	// CandidateNumber is empty when no digits were requested.
	CandidateNumber string `json:"candidate_number"`

	// Answers lists every answer letter, column by column in layout order
	// and top to bottom within a column.
	Answers []string `json:"answers"`

	// Columns gives the same answers grouped per printed column.
	Columns []grid.ColumnAnswers `json:"columns"`

	// SkewAngle is the estimated tilt of the input in degrees.
	SkewAngle float64 `json:"skew_angle"`

	// Deskewed reports whether the tilt was corrected.
	Deskewed bool `json:"deskewed"`

	// Corners are the calibration marks used for the crop.
	Corners align.Corners `json:"corners"`

	// DebugPath is set when a debug overlay was written.
	DebugPath string `json:"debug_path,omitempty"`
}

// Scanner runs the scan pipeline over a Backend.
type Scanner struct {
	backend Backend
	logger  *log.Logger
	verbose bool
}

// New creates a scanner. A nil backend selects ImageBackend.
func New(backend Backend) *Scanner {
	if backend == nil {
		backend = ImageBackend{}
	}
	return &Scanner{
		backend: backend,
		logger:  log.Default(),
	}
}

// SetLogger replaces the logger. When verbose is false only warnings are
// written.
func (s *Scanner) SetLogger(logger *log.Logger, verbose bool) {
	s.logger = logger
	s.verbose = verbose
}

func (s *Scanner) debugf(format string, args ...interface{}) {
	if s.verbose {
		s.logger.Printf(format, args...)
	}
}

// Scan decodes an image from r and reads the sheet.
func (s *Scanner) Scan(r io.Reader, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	img, err := s.backend.Decode(r)
	if err != nil {
		return nil, err
	}
	return s.ScanImage(img, opts)
}

// ScanImage reads an already decoded sheet.
func (s *Scanner) ScanImage(img image.Image, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	profile, err := opts.profile()
	if err != nil {
		return nil, err
	}

	page := s.backend.Grayscale(s.backend.Invert(img))

	angle := s.backend.EstimateSkewAngle(page)
	deskewed := imaging.ShouldDeskew(angle)
	if deskewed {
		s.debugf("Deskewing by %.1f degrees", -angle)
		page = s.backend.Rotate(page, -angle, color.White)
	} else {
		s.logger.Printf("Skew estimate %.1f exceeds %.0f degrees, not deskewing", angle, imaging.MaxDeskewAngle)
	}

	page, corners, err := s.rectify(page, profile)
	if err != nil {
		return nil, err
	}

	width := page.Bounds().Dx()

	alignment := s.backend.DetectBlobs(page, profile.AlignmentBlobs, profile.MarkBackground)
	cols := SplitAlignment(geometry.Centroids(alignment), width, profile)
	s.debugf("Alignment: %d blobs, %d left, %d right", len(alignment), len(cols.Left), len(cols.Right))

	answers := s.backend.DetectBlobs(page, profile.AnswerBlobs, profile.AnswerBackground)
	confirmed := ConfirmMarks(cols, geometry.Centroids(answers), width, profile.Threshold)
	s.debugf("Answers: %d blobs, %d confirmed", len(answers), len(confirmed))

	result, decodeErr := Decode(confirmed, opts.CandidateDigits, opts.Columns)

	debugPath := ""
	if opts.Debug {
		if err := s.writeOverlay(page, cols, confirmed, opts, profile); err != nil {
			s.logger.Printf("Failed to write debug overlay: %v", err)
		} else {
			debugPath = opts.DebugPath
		}
	}

	if decodeErr != nil {
		return nil, decodeErr
	}

	result.SkewAngle = angle
	result.Deskewed = deskewed
	result.Corners = corners
	result.DebugPath = debugPath
	return result, nil
}

// rectify normalizes the page to the canonical frame spanned by the corner
// calibration marks.
func (s *Scanner) rectify(page image.Image, profile config.Profile) (image.Image, align.Corners, error) {
	page = s.backend.Resize(page, CanonicalWidth, CanonicalHeight)

	marks := s.backend.DetectBlobs(page, profile.CalibrationBlobs, profile.MarkBackground)
	corners, err := align.LocateCorners(
		geometry.Centroids(marks),
		page.Bounds(),
		image.Pt(CanonicalWidth, CanonicalHeight),
		CornerMargin,
	)
	if err != nil {
		return nil, align.Corners{}, fmt.Errorf("failed to locate corners: %w", err)
	}

	rect := corners.CropRect(CornerMargin)
	s.debugf("Calibration: %d blobs, crop %v", len(marks), rect)

	cropped, err := s.backend.Crop(page, rect)
	if err != nil {
		return nil, align.Corners{}, fmt.Errorf("failed to crop sheet: %w", err)
	}
	return s.backend.Resize(cropped, CanonicalWidth, CanonicalHeight), corners, nil
}

func (s *Scanner) writeOverlay(page image.Image, cols align.Columns, confirmed []geometry.IntPoint, opts Options, profile config.Profile) error {
	if opts.DebugPath == "" {
		return fmt.Errorf("no debug path set")
	}

	palette, err := overlay.ParsePalette(profile.Palette.Left, profile.Palette.Right, profile.Palette.Confirmed, profile.Palette.Label)
	if err != nil {
		return err
	}

	rendered := overlay.Render(page, overlay.Scene{
		Left:      cols.Left,
		Right:     cols.Right,
		Confirmed: confirmed,
		Labels:    Labels(confirmed, opts.CandidateDigits, opts.Columns),
	}, palette)

	if err := overlay.Save(rendered, opts.DebugPath); err != nil {
		return err
	}
	s.debugf("Debug overlay written to %s", opts.DebugPath)
	return nil
}
