// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/chart/coord"
	"github.com/gogpu/chart/indicator"
	"github.com/gogpu/chart/render"
)

// Config is the YAML form of the chart options.
//
//	pixel_ratio: 2
//	visible_bars: 120
//	scale_mode: log
//	series_type: heikin-ashi
//	theme: light
//	colors:
//	  bullish: "#089981"
//	indicators:
//	  - name: boll
//	    params: {period: 20, k: 2}
type Config struct {
	PixelRatio     float64           `yaml:"pixel_ratio"`
	VisibleBars    int               `yaml:"visible_bars"`
	MinVisibleBars int               `yaml:"min_visible_bars"`
	MaxVisibleBars int               `yaml:"max_visible_bars"`
	RightPadding   int               `yaml:"right_padding"`
	ScaleMode      string            `yaml:"scale_mode"`
	SeriesType     string            `yaml:"series_type"`
	Magnet         bool              `yaml:"magnet"`
	Axes           *bool             `yaml:"axes"`
	VolumeFraction *float64          `yaml:"volume_fraction"`
	Theme          string            `yaml:"theme"`
	Colors         map[string]string `yaml:"colors"`
	Font           string            `yaml:"font"`
	Locale         string            `yaml:"locale"`
	Timezone       string            `yaml:"timezone"`
	Indicators     []IndicatorConfig `yaml:"indicators"`
}

// IndicatorConfig describes one indicator instance.
type IndicatorConfig struct {
	Name     string             `yaml:"name"`
	Params   map[string]float64 `yaml:"params"`
	Colors   []string           `yaml:"colors"`
	Width    float64            `yaml:"width"`
	BandFill string             `yaml:"band_fill"`
}

// LoadConfig reads a YAML config file, applies CHART_THEME and
// CHART_SCALE_MODE environment overrides, fills defaults and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("CHART_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("CHART_SCALE_MODE"); v != "" {
		cfg.ScaleMode = v
	}

	if cfg.PixelRatio == 0 {
		cfg.PixelRatio = 1
	}
	if cfg.VisibleBars == 0 {
		cfg.VisibleBars = DefaultVisibleBars
	}
	if cfg.MinVisibleBars == 0 {
		cfg.MinVisibleBars = DefaultMinVisibleBars
	}
	if cfg.MaxVisibleBars == 0 {
		cfg.MaxVisibleBars = DefaultMaxVisibleBars
	}
	if cfg.ScaleMode == "" {
		cfg.ScaleMode = coord.ScaleLinear.String()
	}
	if cfg.SeriesType == "" {
		cfg.SeriesType = render.SeriesCandles.String()
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.PixelRatio < 0 {
		errs = append(errs, fmt.Errorf("pixel_ratio must be positive"))
	}
	if c.MinVisibleBars < 1 {
		errs = append(errs, fmt.Errorf("min_visible_bars must be at least 1"))
	}
	if c.MaxVisibleBars < c.MinVisibleBars {
		errs = append(errs, fmt.Errorf("max_visible_bars %d is below min_visible_bars %d", c.MaxVisibleBars, c.MinVisibleBars))
	}
	if c.RightPadding < 0 {
		errs = append(errs, fmt.Errorf("right_padding must not be negative"))
	}
	if v := c.VolumeFraction; v != nil && (*v < 0 || *v > 1) {
		errs = append(errs, fmt.Errorf("volume_fraction must be in [0, 1]"))
	}
	if _, err := coord.ParseScaleMode(c.ScaleMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.ParseSeriesType(c.SeriesType); err != nil {
		errs = append(errs, err)
	}
	if th, err := render.ThemeByName(c.Theme); err != nil {
		errs = append(errs, err)
	} else {
		for k, v := range c.Colors {
			if err := th.SetColor(k, v); err != nil {
				errs = append(errs, fmt.Errorf("colors: %w", err))
			}
		}
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			errs = append(errs, fmt.Errorf("locale: %w", err))
		}
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("timezone: %w", err))
		}
	}
	for i, ic := range c.Indicators {
		if ic.Name == "" {
			errs = append(errs, fmt.Errorf("indicators[%d]: name is required", i))
		}
		for _, col := range append(slices.Clone(ic.Colors), ic.BandFill) {
			if col == "" {
				continue
			}
			if _, err := render.ParseColor(col); err != nil {
				errs = append(errs, fmt.Errorf("indicators[%d]: %w", i, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Options converts the config to chart options. Fonts loaded from Font
// belong to the caller, who closes them after the chart.
func (c *Config) Options() ([]Option, *render.Fonts, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	mode, _ := coord.ParseScaleMode(c.ScaleMode)
	series, _ := render.ParseSeriesType(c.SeriesType)
	th, _ := render.ThemeByName(c.Theme)
	for k, v := range c.Colors {
		_ = th.SetColor(k, v)
	}

	opts := []Option{
		WithPixelRatio(c.PixelRatio),
		WithVisibleBars(c.VisibleBars),
		WithBarLimits(c.MinVisibleBars, c.MaxVisibleBars),
		WithRightPadding(c.RightPadding),
		WithScaleMode(mode),
		WithSeriesType(series),
		WithMagnet(c.Magnet),
		WithTheme(th),
	}
	if c.Axes != nil && !*c.Axes {
		opts = append(opts, WithoutAxes())
	}
	if c.VolumeFraction != nil {
		opts = append(opts, WithVolumeFraction(*c.VolumeFraction))
	}
	if c.Locale != "" || c.Timezone != "" {
		tag, loc := language.English, time.UTC
		if c.Locale != "" {
			tag = language.Make(c.Locale)
		}
		if c.Timezone != "" {
			loc, _ = time.LoadLocation(c.Timezone)
		}
		opts = append(opts, WithFormatter(render.NewFormatter(tag, loc)))
	}

	var fonts *render.Fonts
	if c.Font != "" {
		f, err := render.LoadFonts(c.Font)
		if err != nil {
			return nil, nil, fmt.Errorf("font: %w", err)
		}
		fonts = f
		opts = append(opts, WithFonts(f))
	}
	return opts, fonts, nil
}

// ApplyIndicators adds the configured indicators to ch.
func (c *Config) ApplyIndicators(ch *Chart) error {
	for _, ic := range c.Indicators {
		_, err := ch.AddIndicator(ic.Name, indicator.Params(ic.Params), IndicatorStyle{
			Colors:   ic.Colors,
			Width:    ic.Width,
			BandFill: ic.BandFill,
		})
		if err != nil {
			return fmt.Errorf("indicator %q: %w", ic.Name, err)
		}
	}
	return nil
}
