// Command stereogram renders a random-dot autostereogram from a depth map.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	sg "github.com/setanarut/stereogram"
	"github.com/setanarut/stereogram/utils"
)

type flags struct {
	depth, out, config   string
	histogram, patternTo string
	paletteTo, depthTo   string
	verbose              bool
	cfg                  utils.Config
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{cfg: utils.DefaultConfig()}
	fs := flag.NewFlagSet("stereogram", flag.ContinueOnError)
	fs.StringVar(&f.depth, "depth", "", "input depth map (white = near)")
	fs.StringVar(&f.out, "out", "stereogram.png", "output image path")
	fs.StringVar(&f.config, "config", "", "JSON config file; explicit flags override it")
	fs.StringVar(&f.histogram, "histogram", "", "write a shift histogram plot to this path")
	fs.StringVar(&f.patternTo, "pattern-out", "", "write the seed pattern strip to this path")
	fs.StringVar(&f.paletteTo, "palette-out", "", "write the extracted palette swatches to this path")
	fs.StringVar(&f.depthTo, "depth-out", "", "write the preprocessed depth map to this path")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")

	// Flag values land in a scratch config and are copied over the file
	// config only when set explicitly.
	c := utils.DefaultConfig()
	fs.IntVar(&c.Width, "width", c.Width, "canvas width")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height")
	fs.IntVar(&c.PatternWidth, "pattern-width", c.PatternWidth, "seed pattern width in px")
	fs.IntVar(&c.MaxDepthShift, "max-shift", c.MaxDepthShift, "shift of the nearest depth in px")
	fs.Uint64Var(&c.Seed, "seed", 0, "random seed (0 = time based)")
	fs.BoolVar(&c.Invert, "invert", false, "treat black as near")
	fs.IntVar(&c.Guide.Separation, "guide-sep", 0, "guide dot separation (0 = 2*max-shift)")
	fs.IntVar(&c.Guide.Radius, "guide-radius", c.Guide.Radius, "guide dot radius")
	fs.IntVar(&c.Guide.Y, "guide-y", c.Guide.Y, "guide dot distance from the top")
	fs.StringVar(&c.Guide.Color, "guide-color", c.Guide.Color, "guide dot color (#rrggbb)")
	fs.BoolVar(&c.Guide.Disabled, "no-guide", false, "omit the guide dots")
	fs.StringVar(&c.Palette.From, "palette-from", "", "draw dot colors from a palette of this image")
	fs.IntVar(&c.Palette.Size, "palette-size", c.Palette.Size, "number of palette colors")
	fs.StringVar(&c.Palette.Method, "palette-method", c.Palette.Method, "dominantcolor|kmeans")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.depth == "" {
		return nil, errors.New("missing -depth")
	}
	if f.config != "" {
		var err error
		if f.cfg, err = utils.LoadConfig(f.config); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			f.cfg.Width = c.Width
		case "height":
			f.cfg.Height = c.Height
		case "pattern-width":
			f.cfg.PatternWidth = c.PatternWidth
		case "max-shift":
			f.cfg.MaxDepthShift = c.MaxDepthShift
		case "seed":
			f.cfg.Seed = c.Seed
		case "invert":
			f.cfg.Invert = c.Invert
		case "guide-sep":
			f.cfg.Guide.Separation = c.Guide.Separation
		case "guide-radius":
			f.cfg.Guide.Radius = c.Guide.Radius
		case "guide-y":
			f.cfg.Guide.Y = c.Guide.Y
		case "guide-color":
			f.cfg.Guide.Color = c.Guide.Color
		case "no-guide":
			f.cfg.Guide.Disabled = c.Guide.Disabled
		case "palette-from":
			f.cfg.Palette.From = c.Palette.From
		case "palette-size":
			f.cfg.Palette.Size = c.Palette.Size
		case "palette-method":
			f.cfg.Palette.Method = c.Palette.Method
		}
	})
	return f, f.cfg.Validate()
}

func run(f *flags, log *slog.Logger) error {
	cfg := f.cfg
	depth, err := utils.LoadDepthMap(f.depth, cfg.Width, cfg.Height, cfg.Invert)
	if err != nil {
		return fmt.Errorf("load depth map: %w", err)
	}
	opt, err := cfg.Options()
	if err != nil {
		return err
	}
	if cfg.Palette.From != "" {
		method, err := utils.ParsePaletteMethod(cfg.Palette.Method)
		if err != nil {
			return err
		}
		src, err := utils.ReadImage(cfg.Palette.From)
		if err != nil {
			return fmt.Errorf("palette image: %w", err)
		}
		if opt.Palette, err = utils.ExtractPalette(src, cfg.Palette.Size, method); err != nil {
			return fmt.Errorf("palette: %w", err)
		}
		utils.SortPaletteByBrightness(opt.Palette)
		log.Info("palette extracted", "colors", len(opt.Palette), "method", method)
		if f.paletteTo != "" {
			if err := utils.SavePalette(opt.Palette, 64, f.paletteTo); err != nil {
				return fmt.Errorf("save palette: %w", err)
			}
		}
	}

	st, err := sg.AnalyzeDepth(depth, opt.MaxDepthShift)
	if err != nil {
		return err
	}
	log.Info("depth map loaded", "path", f.depth, "width", depth.Width(), "height", depth.Height(),
		"mean", st.Mean, "stddev", st.StdDev, "median", st.Median, "foreground", st.Foreground)
	if f.depthTo != "" {
		if err := utils.SaveImage(depth.Gray(), f.depthTo); err != nil {
			return fmt.Errorf("save depth map: %w", err)
		}
	}
	if f.histogram != "" {
		if err := utils.SaveShiftHistogram(st, f.histogram); err != nil {
			return fmt.Errorf("histogram: %w", err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info("rendering", "seed", seed, "patternWidth", opt.PatternWidth, "maxShift", opt.MaxDepthShift,
		"guideColor", utils.FormatColor(opt.GuideColor))

	b := sg.NewBuilder(depth, rand.New(rand.NewPCG(seed, seed>>32|seed<<32)))
	img, err := b.Build(opt)
	if err != nil {
		return err
	}
	if err := utils.SaveImage(img, f.out); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if f.patternTo != "" {
		if err := utils.SaveImage(b.Pattern, f.patternTo); err != nil {
			return fmt.Errorf("save pattern: %w", err)
		}
	}
	log.Info("wrote stereogram", "path", f.out)
	return nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "stereogram:", err)
		fmt.Fprintln(os.Stderr, "usage: stereogram -depth <image> [-out stereogram.png] [-config file.json] ...")
		os.Exit(2)
	}
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	sg.SetLogger(log)

	if err := run(f, log); err != nil {
		log.Error("failed", "err", err)
		os.Exit(1)
	}
}
