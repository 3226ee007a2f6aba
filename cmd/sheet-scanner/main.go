package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ironsheep/sheet-scanner/internal/batch"
	"github.com/ironsheep/sheet-scanner/internal/config"
	"github.com/ironsheep/sheet-scanner/internal/scanner"
	"github.com/ironsheep/sheet-scanner/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// errSheetsFailed signals that the report was written but some sheets could
// not be scanned.
var errSheetsFailed = errors.New("one or more sheets failed to scan")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("sheet-scanner %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return
	}

	// Configure logging to stderr (stdout carries JSON output)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	verbose := os.Getenv("SHEET_SCANNER_LOG_LEVEL") == "debug"

	var err error
	switch os.Args[1] {
	case "scan":
		err = runScan(os.Args[2:], verbose)
	case "serve":
		err = runServe(os.Args[2:], verbose)
	case "init-config":
		err = runInitConfig(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if errors.Is(err, errSheetsFailed) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "sheet-scanner - read multiple-choice answer sheets from scans and photos")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sheet-scanner scan [flags] <file|dir>...   Scan sheets, print a JSON report")
	fmt.Fprintln(w, "  sheet-scanner serve [flags]                Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  sheet-scanner init-config [path]           Write a default config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sheet-scanner scan -h' for scan flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  SHEET_SCANNER_LOG_LEVEL=debug    Enable debug logging")
}

// loadConfig reads path, or returns defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

func newScanner(verbose bool) *scanner.Scanner {
	sc := scanner.New(nil)
	sc.SetLogger(log.Default(), verbose)
	return sc
}

func runScan(args []string, verbose bool) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	profile := fs.String("profile", "", "tuning profile name")
	digits := fs.Int("digits", 0, "candidate-number digits")
	columns := fs.Int("columns", 1, "answer columns (1, 2 or 4)")
	debug := fs.Bool("debug", false, "write a .debug.png overlay per sheet")
	debugDir := fs.String("debug-dir", "", "directory for overlays (default: next to each sheet)")
	workers := fs.Int("workers", 4, "sheets scanned in parallel")
	output := fs.String("o", "", "write the report to this file instead of stdout")
	fs.BoolVar(&verbose, "verbose", verbose, "enable debug logging")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("no sheets given")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	// Flags given explicitly override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "profile":
			cfg.Profile = *profile
		case "digits":
			cfg.CandidateDigits = *digits
		case "columns":
			cfg.Columns = *columns
		case "debug":
			cfg.Debug = *debug
		case "debug-dir":
			cfg.DebugDir = *debugDir
		case "workers":
			cfg.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	prof, err := cfg.ResolveProfile()
	if err != nil {
		return err
	}

	files, err := batch.Expand(fs.Args())
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("Scanning %d sheets with profile %s, %d workers", len(files), prof.Name, cfg.Workers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, runErr := batch.Run(ctx, newScanner(verbose), files, batch.Options{
		Workers:  cfg.Workers,
		DebugDir: cfg.DebugDir,
		Scan: scanner.Options{
			CandidateDigits: cfg.CandidateDigits,
			Columns:         cfg.Columns,
			Debug:           cfg.Debug,
			Profile:         prof,
		},
	})

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := batch.WriteJSON(out, report); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("scan interrupted: %w", runErr)
	}
	if report.Failed > 0 {
		log.Printf("%d of %d sheets failed", report.Failed, len(report.Items))
		return errSheetsFailed
	}
	return nil
}

func runServe(args []string, verbose bool) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	fs.BoolVar(&verbose, "verbose", verbose, "enable debug logging")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if verbose {
		log.Printf("Sheet Scanner MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg, newScanner(verbose))
	srv.SetVersion(Version)
	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runInitConfig(args []string) error {
	path := "sheet-scanner.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.Default()
	cfg.Profiles = config.Builtins()
	if err := config.SaveConfig(path, cfg); err != nil {
		return err
	}
	log.Printf("Wrote %s", path)
	return nil
}
