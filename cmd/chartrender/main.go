// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command chartrender renders a price chart to a PNG file.
//
//	chartrender --data bars.csv --config chart.yaml --drawings drawings.json --out chart.png
//
// Without --data it renders a synthetic random walk.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/ohlc"
)

type flags struct {
	data     string
	config   string
	drawings string
	out      string
	width    float64
	height   float64
	bars     int
	interval time.Duration
	seed     uint64
	scroll   int
	verbose  bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "chartrender",
		Short: "Render a financial price chart to PNG",

		// SilenceUsage is an option to silence usage when an error occurs.
		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}
	bindFlags(cmd.Flags(), f)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVar(&f.data, "data", "", "bars as CSV (time,open,high,low,close[,volume]) or JSON")
	fs.StringVar(&f.config, "config", "", "YAML chart config")
	fs.StringVar(&f.drawings, "drawings", "", "annotations JSON to overlay")
	fs.StringVarP(&f.out, "out", "o", "chart.png", "output file")
	fs.Float64Var(&f.width, "width", 960, "chart width in logical px")
	fs.Float64Var(&f.height, "height", 540, "chart height in logical px")
	fs.IntVar(&f.bars, "bars", 300, "number of synthetic bars")
	fs.DurationVar(&f.interval, "interval", time.Minute, "synthetic bar interval")
	fs.Uint64Var(&f.seed, "seed", 1, "synthetic data seed")
	fs.IntVar(&f.scroll, "scroll", 0, "bars to scroll back from the newest")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log chart activity")
}

func run(f *flags) error {
	if f.verbose {
		chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	bars, err := inputBars(f)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}
	opts, fonts, err := cfg.Options()
	if err != nil {
		return err
	}
	if fonts != nil {
		defer fonts.Close()
	}

	c, err := chart.New(f.width, f.height, opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	c.SetData(bars)
	c.ScrollTo(f.scroll)
	if err := cfg.ApplyIndicators(c); err != nil {
		return err
	}
	if f.drawings != "" {
		data, err := os.ReadFile(f.drawings)
		if err != nil {
			return err
		}
		if err := c.Engine().Restore(data); err != nil {
			return fmt.Errorf("drawings: %w", err)
		}
	}

	img := c.Snapshot()
	dc := gg.NewContext(img.Bounds().Dx(), img.Bounds().Dy())
	defer dc.Close()
	dc.DrawImage(gg.ImageBufFromImage(img), 0, 0)
	if err := dc.SavePNG(f.out); err != nil {
		return fmt.Errorf("save %s: %w", f.out, err)
	}
	log.Printf("Chart saved to %s (%dx%d, %d bars)", f.out, dc.Width(), dc.Height(), len(bars))
	return nil
}

func inputBars(f *flags) ([]ohlc.Bar, error) {
	if f.data != "" {
		return loadBars(f.data)
	}
	if f.bars <= 0 {
		return nil, fmt.Errorf("--bars must be positive, got %d", f.bars)
	}
	interval := int64(f.interval / time.Second)
	if interval <= 0 {
		return nil, fmt.Errorf("--interval must be at least 1s, got %v", f.interval)
	}
	end := time.Now().Unix() / interval * interval
	return ohlc.NewWalk(end-int64(f.bars-1)*interval, interval, f.seed).Bars(f.bars), nil
}

func loadConfig(path string) (*chart.Config, error) {
	if path == "" {
		return chart.ParseConfig(nil)
	}
	return chart.LoadConfig(path)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
