// Command spritectl creates, inspects and converts .lsprite documents.
//
// Usage:
//
//	spritectl new -w 32 -h 32 -depth 32 -o out.lsprite
//	spritectl info file.lsprite
//	spritectl import in.png out.lsprite
//	spritectl export -format png -scale 4 -quality 92 in.lsprite out.png
//	spritectl export -scales 1,2,4 in.lsprite out.png
//	spritectl flatten in.lsprite out.lsprite
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lightplay/sprite"
	"github.com/lightplay/sprite/editor"
	"github.com/lightplay/sprite/export"
	"github.com/lightplay/sprite/lsprite"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("spritectl: ")

	verbose := flag.Bool("v", false, "log to stderr")
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		sprite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch cmd {
	case "new":
		err = runNew(args)
	case "info":
		err = runInfo(args)
	case "import":
		err = runImport(args)
	case "export":
		err = runExport(args)
	case "flatten":
		err = runFlatten(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: spritectl [-v] command [flags] args

commands:
  new      create a blank document
  info     describe a document
  import   convert an image to a document
  export   render a document to an image
  flatten  merge all layers of a document into one
`)
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	var (
		width  = fs.Int("w", editor.DefaultCanvasSize, "canvas width")
		height = fs.Int("h", editor.DefaultCanvasSize, "canvas height")
		depth  = fs.Int("depth", sprite.DefaultColorDepth, "color depth label (8, 16 or 32)")
		fill   = fs.String("color", "", "background color (#rrggbb, #rrggbbaa or a CSS name)")
		output = fs.String("o", "untitled.lsprite", "output file")
	)
	_ = fs.Parse(args)

	if *width < 1 || *height < 1 || *width > lsprite.MaxDimension || *height > lsprite.MaxDimension {
		return fmt.Errorf("%w: %dx%d", sprite.ErrInvalidDimensions, *width, *height)
	}
	s := sprite.NewLayerStack(*width, *height, *depth)
	if *fill != "" {
		c, err := sprite.ParseColor(*fill)
		if err != nil {
			return err
		}
		s.ActiveLayer().Buffer().Fill(c)
	}
	if err := lsprite.Save(*output, s); err != nil {
		return err
	}
	log.Printf("created %s (%dx%d)", *output, *width, *height)
	return nil
}

func runInfo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("info: want one file, got %d", len(args))
	}
	s, err := lsprite.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d, depth %d, %d layer(s), %d bytes of pixels\n",
		args[0], s.Width(), s.Height(), s.ColorDepth(), s.Len(), s.ByteSize())
	for i, l := range s.Layers() {
		marker := " "
		if i == s.ActiveIndex() {
			marker = "*"
		}
		var flags []string
		if !l.Visible() {
			flags = append(flags, "hidden")
		}
		if l.Locked() {
			flags = append(flags, "locked")
		}
		fmt.Printf("%s %2d %-20q opacity %.2f %s\n", marker, i, l.Name(), l.Opacity(), strings.Join(flags, ","))
	}
	return nil
}

// runImport opens an image in an editor session and saves it as a
// document, the same path an interactive open-then-save takes.
func runImport(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("import: want input and output files, got %d args", len(args))
	}
	in, out := args[0], args[1]
	data, err := os.ReadFile(filepath.Clean(in))
	if err != nil {
		return err
	}

	ed := editor.New(
		editor.WithMaxCanvasSize(lsprite.MaxDimension),
		editor.WithSaveAsFunc(func(_ context.Context, doc []byte, _ string, _ int) (string, error) {
			return out, os.WriteFile(out, doc, 0o644)
		}),
	)
	ctx := context.Background()
	if _, err := ed.Open(ctx, filepath.Base(in), bytes.NewReader(data)); err != nil {
		return err
	}
	if err := ed.SaveAs(ctx); err != nil {
		return err
	}
	s := ed.LayerStack()
	log.Printf("imported %s -> %s (%dx%d)", in, out, s.Width(), s.Height())
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var (
		format  = fs.String("format", "", "output format (png, jpg, bmp, tiff); default from output name")
		scale   = fs.Int("scale", 1, "scale factor (1, 2, 4, 8 or 16)")
		scales  = fs.String("scales", "", "comma-separated scale factors; writes one file per scale")
		quality = fs.Int("quality", export.DefaultQuality, "JPEG quality (1-100)")
	)
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("export: want input and output files, got %d args", fs.NArg())
	}
	in, out := fs.Arg(0), fs.Arg(1)

	var f export.Format
	var err error
	if *format == "" {
		f, err = export.FormatFromPath(out)
	} else {
		f, err = export.ParseFormat(*format)
	}
	if err != nil {
		return err
	}
	s, err := lsprite.Load(in)
	if err != nil {
		return err
	}
	settings := export.Settings{Format: f, Quality: *quality, Scale: *scale}

	if *scales == "" {
		if err := export.Save(out, s, settings); err != nil {
			return err
		}
		log.Printf("exported %s -> %s at %dx", in, out, settings.Normalized().Scale)
		return nil
	}

	factors, err := parseScales(*scales)
	if err != nil {
		return err
	}
	results, err := export.Batch(context.Background(), s, settings, factors)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(out, filepath.Ext(out))
	for _, r := range results {
		path := fmt.Sprintf("%s@%dx%s", base, r.Scale, settings.Extension())
		if err := os.WriteFile(path, r.Data, 0o644); err != nil {
			return err
		}
		log.Printf("exported %s -> %s", in, path)
	}
	return nil
}

func parseScales(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("bad scale %q: %w", field, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func runFlatten(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("flatten: want input and output files, got %d args", len(args))
	}
	s, err := lsprite.Load(args[0])
	if err != nil {
		return err
	}
	n := s.Len()
	s.FlattenToLayer()
	if err := lsprite.Save(args[1], s); err != nil {
		return err
	}
	log.Printf("flattened %d layer(s) of %s -> %s", n, args[0], args[1])
	return nil
}
