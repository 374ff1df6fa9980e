// pxreftool is a headless utility for pxref reference files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/logger"
	"github.com/Faultbox/pxref/internal/palette"
	"github.com/Faultbox/pxref/internal/pxref"
	"github.com/Faultbox/pxref/internal/resolve"
)

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "pxreftool",
		Usage:  "inspect, create and render pxref reference files",
		Writer: w,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				if err := logger.Init("debug", ""); err != nil {
					return ctx, err
				}
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "show reference file information",
				ArgsUsage: "<file.pxref>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, err := requireArg(cmd, "file.pxref")
					if err != nil {
						return err
					}
					return cmdInfo(cmd.Root().Writer, path)
				},
			},
			{
				Name:      "render",
				Usage:     "export all frames as a horizontal PNG strip",
				ArgsUsage: "<file.pxref>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output PNG (default: next to the input)"},
					&cli.IntFlag{Name: "scale", Aliases: []string{"s"}, Value: 1, Usage: "nearest-neighbor upscale factor"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, err := requireArg(cmd, "file.pxref")
					if err != nil {
						return err
					}
					return cmdRender(cmd.Root().Writer, path, cmd.String("output"), int(cmd.Int("scale")))
				},
			},
			{
				Name:      "new",
				Usage:     "create an empty reference file",
				ArgsUsage: "<file.pxref>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "palette", Aliases: []string{"p"}, Usage: "palette image path to store"},
					&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Value: 1, Usage: "number of empty frames"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, err := requireArg(cmd, "file.pxref")
					if err != nil {
						return err
					}
					return cmdNew(cmd.Root().Writer, path, cmd.String("palette"), int(cmd.Int("frames")))
				},
			},
			{
				Name:      "palette",
				Usage:     "list the filled slots of a palette image",
				ArgsUsage: "<image>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, err := requireArg(cmd, "image")
					if err != nil {
						return err
					}
					return cmdPalette(cmd.Root().Writer, path)
				},
			},
		},
	}
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() < 1 {
		return "", fmt.Errorf("missing <%s> argument", name)
	}
	return cmd.Args().First(), nil
}

func cmdInfo(w io.Writer, path string) error {
	doc, err := pxref.Load(path)
	if err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return err
	}

	palettePath := pxref.PalettePath(path, doc.PalettePath)

	fmt.Fprintf(w, "File:    %s\n", path)
	fmt.Fprintf(w, "Size:    %s\n", humanize.Bytes(uint64(st.Size())))
	fmt.Fprintf(w, "Palette: %s\n", orNone(palettePath))
	fmt.Fprintf(w, "Frames:  %d\n", len(doc.Frames))

	var p *palette.Palette
	if palettePath != "" {
		p, err = palette.Load(palettePath)
		if err != nil {
			fmt.Fprintf(w, "         (palette unavailable: %v)\n", err)
			logger.Debug("palette unavailable", zap.String("path", palettePath), zap.Error(err))
		}
	}

	fmt.Fprintln(w)
	for k := range doc.Frames {
		f := &doc.Frames[k]
		used := f.Used()
		if p == nil {
			fmt.Fprintf(w, "  frame %-3d %3d cells\n", k+1, used)
			continue
		}
		fmt.Fprintf(w, "  frame %-3d %3d cells, %d dangling\n", k+1, used, dangling(f, p))
	}
	return nil
}

// dangling counts set cells whose palette slot is empty.
func dangling(f *frame.Frame, p *palette.Palette) int {
	n := 0
	for x := 0; x < frame.Size; x++ {
		for y := 0; y < frame.Size; y++ {
			if !f.Get(x, y).Set {
				continue
			}
			if _, ok := resolve.Resolve(f, x, y, p); !ok {
				n++
			}
		}
	}
	return n
}

func cmdRender(w io.Writer, path, output string, scale int) error {
	if scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	doc, err := pxref.Load(path)
	if err != nil {
		return err
	}

	p := palette.New()
	if palettePath := pxref.PalettePath(path, doc.PalettePath); palettePath != "" {
		if p, err = palette.Load(palettePath); err != nil {
			return err
		}
	}

	if output == "" {
		output = path[:len(path)-len(filepath.Ext(path))] + ".png"
	}
	final, n, err := pxref.ExportPNG(output, doc.Frames, p, scale)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Rendered %d frame(s) to %s (%s)\n", len(doc.Frames), final, humanize.Bytes(uint64(n)))
	return nil
}

func cmdNew(w io.Writer, path, palettePath string, frames int) error {
	if frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", frames)
	}
	if _, err := os.Stat(pxref.WithExtension(path, pxref.Extension)); err == nil {
		return fmt.Errorf("%s already exists", pxref.WithExtension(path, pxref.Extension))
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	final, err := pxref.Save(path, pxref.Document{
		PalettePath: palettePath,
		Frames:      make([]frame.Frame, frames),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Created %s with %d empty frame(s)\n", final, frames)
	return nil
}

func cmdPalette(w io.Writer, path string) error {
	p, err := palette.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Palette: %s (%d of %d slots filled)\n", path, p.Count(), palette.Size*palette.Size)
	for y := 0; y < palette.Size; y++ {
		for x := 0; x < palette.Size; x++ {
			c, ok := p.Get(x, y)
			if !ok {
				continue
			}
			label := resolve.Label(frame.Ref{X: x, Y: y})
			fmt.Fprintf(w, "  %4s  (%2d,%2d)  #%02x%02x%02x\n", label, x, y, c.R, c.G, c.B)
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
