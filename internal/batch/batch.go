// Package batch scans many sheet files in parallel and collects a report.
//
// Files are scanned by a bounded pool of workers. A sheet that fails to scan
// records its error in the report and does not stop the others; cancelling
// the context stops new sheets from starting.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/sheet-scanner/internal/imaging"
	"github.com/ironsheep/sheet-scanner/internal/scanner"
)

// Scanner reads one sheet. *scanner.Scanner satisfies it.
type Scanner interface {
	Scan(r io.Reader, opts scanner.Options) (*scanner.Result, error)
}

// Options controls a batch run.
type Options struct {
	// Workers bounds concurrent scans. Values below 1 mean 1.
	Workers int

	// Scan is applied to every sheet. When Scan.Debug is set, each sheet
	// gets its own overlay path derived by DebugPath.
	Scan scanner.Options

	// DebugDir receives overlays. Empty means next to each sheet.
	DebugDir string
}

// Item is the outcome for one file.
type Item struct {
	Path       string          `json:"path"`
	Result     *scanner.Result `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	DurationMS int64           `json:"duration_ms"`
}

// Report collects the items in input order.
type Report struct {
	Items   []Item `json:"items"`
	Scanned int    `json:"scanned"`
	Failed  int    `json:"failed"`
}

// Expand resolves paths into the list of sheet files to scan. Directories
// are walked recursively and contribute files with a supported image
// extension; files named explicitly are always kept. Directory contents are
// sorted, duplicates are dropped.
func Expand(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	files := make([]string, 0, len(paths))
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		found := make([]string, 0)
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && imaging.IsSupported(path) && !isOverlay(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

const overlaySuffix = ".debug.png"

func isOverlay(path string) bool {
	return strings.HasSuffix(path, overlaySuffix)
}

// DebugPath returns the overlay path for a sheet: the sheet's base name with
// a ".debug.png" suffix, in dir or next to the sheet when dir is empty.
func DebugPath(sheet, dir string) string {
	if dir == "" {
		dir = filepath.Dir(sheet)
	}
	base := filepath.Base(sheet)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+overlaySuffix)
}

// Run scans files with s. The returned error is non-nil only when ctx ended
// the run early; the report is complete either way, with unscanned files
// carrying the context error.
func Run(ctx context.Context, s Scanner, files []string, opts Options) (*Report, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	items := make([]Item, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		items[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Error = err.Error()
				return err
			}

			start := time.Now()
			result, err := scanFile(s, path, opts)
			items[i].DurationMS = time.Since(start).Milliseconds()
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Result = result
			return nil
		})
	}

	runErr := g.Wait()

	report := &Report{Items: items}
	for _, item := range items {
		if item.Error != "" {
			report.Failed++
		} else {
			report.Scanned++
		}
	}
	return report, runErr
}

func scanFile(s Scanner, path string, opts Options) (*scanner.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	scanOpts := opts.Scan
	if scanOpts.Debug {
		scanOpts.DebugPath = DebugPath(path, opts.DebugDir)
	}
	return s.Scan(f, scanOpts)
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
