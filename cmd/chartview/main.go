// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command chartview shows a live price chart in a gogpu window.
//
//	gg.Context (chart) → ggcanvas.Canvas → gogpu.Context (GPU) → Window
//
// The chart repaints from a FrameQueue that runs once per window frame.
// Press Space to start or stop the simulated live feed. Drag to scroll and
// use the wheel to zoom. T, Y, E, H, J, V, X, F, R and P pick a drawing
// tool; Escape cancels it and Delete removes the selected drawing.
package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/indicator"
	"github.com/gogpu/chart/ohlc"
)

const (
	width, height = 1024, 600
	interval      = 60
	tickEvery     = 200 * time.Millisecond
	ticksPerBar   = 10
)

// feed simulates trades against the newest bar.
type feed struct {
	walk  *ohlc.Walk
	last  ohlc.Bar
	ticks int
	at    time.Time
}

func (f *feed) step(c *chart.Chart, now time.Time) {
	if now.Sub(f.at) < tickEvery {
		return
	}
	f.at = now
	f.ticks++
	if f.ticks%ticksPerBar == 0 {
		f.last = f.walk.Next()
	} else {
		f.last = f.walk.Tick(f.last)
	}
	c.UpdateBar(f.last)
}

func main() {
	if os.Getenv("CHART_DEBUG") != "" {
		chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("gogpu chart").
		WithSize(width, height).
		WithContinuousRender(false))

	queue := chart.NewFrameQueue()
	c, err := chart.New(width, height, chart.WithScheduler(queue))
	if err != nil {
		log.Fatalf("Failed to create chart: %v", err)
	}

	start := time.Now().Unix()/interval*interval - 499*interval
	walk := ohlc.NewWalk(start, interval, uint64(time.Now().UnixNano()))
	bars := walk.Bars(500)
	c.SetData(bars)
	if _, err := c.AddIndicator("boll", indicator.Params{"period": 20, "k": 2}, chart.IndicatorStyle{}); err != nil {
		log.Printf("Indicator error: %v", err)
	}
	if err := c.Start(); err != nil {
		log.Fatalf("Failed to start chart: %v", err)
	}

	live := &feed{walk: walk, last: bars[len(bars)-1]}
	var canvas *ggcanvas.Canvas
	var animToken *gogpu.AnimationToken
	running, drawn := false, false

	// Input wakes the render loop until a frame passes with nothing to
	// paint. Hover can hide the crosshair without using the event.
	awake := false
	wake := func() {
		if running || awake {
			return
		}
		awake = true
		animToken = app.StartAnimation()
	}

	app.OnDraw(func(dc *gogpu.Context) {
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			canvas, err = ggcanvas.New(provider, w, h)
			if err != nil {
				log.Fatalf("Failed to create canvas: %v", err)
			}
		}
		if cw, ch := canvas.Size(); cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				log.Printf("Resize error: %v", err)
			}
			if err := c.Resize(float64(w), float64(h), 1); err != nil {
				log.Printf("Chart resize error: %v", err)
			}
			drawn = false
		}

		if running {
			live.step(c, time.Now())
		}
		before := c.Frames()
		queue.Run()
		if c.Frames() != before || !drawn {
			drawn = true
			if err := canvas.Draw(func(cc *gg.Context) {
				cc.Clear()
				if err := c.DrawTo(cc, 0, 0); err != nil {
					log.Printf("Chart draw error: %v", err)
				}
			}); err != nil {
				log.Printf("Draw error: %v", err)
			}
		}

		if awake && c.Frames() == before {
			awake = false
			animToken.Stop()
			animToken = nil
		}

		sv := dc.RenderTarget().SurfaceView()
		sw, sh := dc.SurfaceSize()
		if err := canvas.RenderDirect(sv, sw, sh); err != nil {
			log.Printf("RenderDirect error: %v", err)
		}
	})

	events := app.EventSource()
	mouse := &pointer{c: c}
	events.OnMouseMove(func(x, y float64) {
		mouse.move(x, y)
		wake()
	})
	events.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		mouse.press(b, x, y)
		wake()
	})
	events.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		mouse.release(b, x, y)
		wake()
	})
	events.OnScroll(func(dx, dy float64) {
		mouse.scroll(dx, dy)
		wake()
	})

	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			handleKey(c, key)
			wake()
			return
		}
		running = !running
		if animToken != nil {
			animToken.Stop()
			animToken = nil
		}
		awake = false
		if running {
			animToken = app.StartAnimation()
			log.Printf("Live feed started")
			return
		}
		log.Printf("Live feed stopped")
	})

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		_ = c.Close()
		gg.CloseAccelerator()
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
