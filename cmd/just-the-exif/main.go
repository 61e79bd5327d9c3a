// Command just-the-exif prints the EXIF metadata of every file matching a
// path glob, one JSON object per line.
//
//	just-the-exif 'photos/**/*.jpg'
//
// Files that cannot be read or carry no EXIF are skipped silently; set
// LOG_LEVEL=debug to see why. Other settings come from the environment
// (or a .env file):
//
//	EXIF_WORKERS      decode pool size (default: number of CPUs)
//	EXIF_MAKER_NOTES  decode Canon and Nikon maker notes
//	EXIF_PARTIAL      keep fields read before a non-critical error
//	LOG_LEVEL         debug, info, warn or error (default: info)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/config"
	"github.com/simonhull/imagemeta/internal/logging"
	"github.com/simonhull/imagemeta/internal/report"
	"github.com/simonhull/imagemeta/internal/resolve"
)

const usage = `Usage: just-the-exif <path-glob>

Print the EXIF metadata of each matching file as one JSON object per line.

Patterns support *, ?, [...], {a,b} and ** (any number of directories).
Quote the pattern so the shell does not expand it.

Flags:
  -h, --help   show this help
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	pattern, code, ok := parseArgs(args, stdout, stderr)
	if !ok {
		return code
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "just-the-exif: %v\n", err)
		return 1
	}

	logger := logging.New(stderr, cfg.LogLevel)
	info := imagemeta.GetVersionInfo()
	logger.Debug("starting",
		"version", info.Version,
		"commit", info.GitCommit,
		"workers", cfg.Workers,
		"maker_notes", cfg.MakerNotes,
		"partial", cfg.Partial,
	)

	paths, err := resolve.Paths(pattern, logger)
	if err != nil {
		fmt.Fprintf(stderr, "just-the-exif: %v\n", err)
		return 1
	}
	logger.Debug("resolved pattern", "pattern", pattern, "files", len(paths))

	opts := []imagemeta.Option{
		imagemeta.WithLogger(logger),
		imagemeta.WithWorkers(cfg.Workers),
	}
	if cfg.MakerNotes {
		opts = append(opts, imagemeta.WithMakerNotes())
	}
	if cfg.Partial {
		opts = append(opts, imagemeta.WithPartialDecode())
	}

	rep := report.New(stdout)
	stats := imagemeta.ExtractAll(ctx, paths, func(f *imagemeta.File) {
		if err := rep.Report(f); err != nil {
			logger.Warn("write failed", "error", err)
		}
	}, opts...)

	logger.Debug("done",
		"total", stats.Total,
		"extracted", stats.Extracted,
		"skipped", stats.Skipped,
		"lines", rep.Lines(),
	)
	return 0
}

// parseArgs returns the pattern and true, or an exit code and false when
// the command should stop.
func parseArgs(args []string, stdout, stderr io.Writer) (string, int, bool) {
	fs := flag.NewFlagSet("just-the-exif", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stdout, usage)
			return "", 0, false
		}
		fmt.Fprintf(stderr, "just-the-exif: %v\n\n%s", err, usage)
		return "", 1, false
	}

	switch fs.NArg() {
	case 1:
		return fs.Arg(0), 0, true
	case 0:
		fmt.Fprintf(stderr, "just-the-exif: missing path pattern\n\n%s", usage)
	default:
		fmt.Fprintf(stderr, "just-the-exif: expected one path pattern, got %d\n\n%s", fs.NArg(), usage)
	}
	return "", 1, false
}
