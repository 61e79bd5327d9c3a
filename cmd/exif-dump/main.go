// Command exif-dump prints every EXIF field of one image as a table: tag
// ID, EXIF type, name, rendered text, and the kind the text coerces to.
//
// Useful to confirm what each field renders as before it reaches JSON.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	flag "github.com/spf13/pflag"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/exif"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("exif-dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noColor := fs.Bool("no-color", false, "disable colored output")
	makerNotes := fs.Bool("maker-notes", false, "decode Canon and Nikon maker notes")
	partial := fs.Bool("partial", false, "keep fields read before a non-critical error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: exif-dump [flags] <image>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	color.Enable = !*noColor
	if *makerNotes {
		exif.EnableMakerNotes()
	}

	path := fs.Arg(0)
	format, md, err := decode(path, types.DecodeOptions{AllowPartial: *partial})
	if err != nil {
		fmt.Fprintln(stderr, color.Red.Render("Error: ", err))
		return 1
	}

	fmt.Fprintf(stdout, "%s (%s, %d fields)\n", path, format, len(md.Fields))
	render(stdout, md.Fields)

	if ext := strings.ToLower(filepath.Ext(path)); !lo.Contains(format.Extensions(), ext) {
		fmt.Fprintln(stderr, color.Yellow.Render("Warning: extension ", ext, " does not match detected ", format))
	}

	for _, w := range md.Warnings {
		fmt.Fprintln(stderr, color.Yellow.Render("Warning: ", w.String()))
	}
	return 0
}

func decode(path string, opts types.DecodeOptions) (types.Format, *types.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.FormatUnknown, nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return types.FormatUnknown, nil, err
	}

	format, err := imagemeta.DetectFormat(f, stat.Size(), path)
	if err != nil {
		return types.FormatUnknown, nil, err
	}

	decoder := registry.Get(format)
	if decoder == nil {
		return format, nil, fmt.Errorf("no decoder for %s", format)
	}

	md, err := decoder.Decode(f, stat.Size(), path, opts)
	if err != nil {
		return format, nil, err
	}
	return format, md, nil
}

var kindColors = map[types.Kind]color.Color{
	types.KindInteger: color.Cyan,
	types.KindFloat:   color.Yellow,
	types.KindText:    color.Green,
}

func render(w io.Writer, fields []types.RawField) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tag", "Type", "Name", "Text", "Kind"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, f := range fields {
		kind := types.Coerce(f.Text).Kind()
		table.Append([]string{
			fmt.Sprintf("0x%04X", f.Tag),
			f.Type,
			f.Name,
			f.Text,
			kindColors[kind].Render(kind.String()),
		})
	}
	table.Render()
}
