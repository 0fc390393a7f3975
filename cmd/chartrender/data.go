// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/gogpu/chart/ohlc"
)

var errNoBars = errors.New("no bars")

// loadBars reads bars from a .json file (an array of objects with time,
// open, high, low, close and volume) or from CSV with the columns
// time,open,high,low,close[,volume]. A header row is skipped.
func loadBars(path string) ([]ohlc.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var bars []ohlc.Bar
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		bars, err = parseJSONBars(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		bars, err = parseCSVBars(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errNoBars)
	}
	return bars, nil
}

func parseCSVBars(r io.Reader) ([]ohlc.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var bars []ohlc.Bar
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("line %d: want at least 5 columns, got %d", line, len(rec))
		}
		t, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("line %d: time: %w", line, err)
		}
		b := ohlc.Bar{Time: t}
		fields := []*float64{&b.Open, &b.High, &b.Low, &b.Close, &b.Volume}
		for i, dst := range fields {
			if i+1 >= len(rec) {
				break
			}
			if *dst, err = strconv.ParseFloat(rec[i+1], 64); err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", line, i+2, err)
			}
		}
		if n := len(bars); n > 0 && b.Time <= bars[n-1].Time {
			return nil, fmt.Errorf("line %d: time %d is not after %d", line, b.Time, bars[n-1].Time)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func parseJSONBars(data []byte) ([]ohlc.Bar, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	bars := make([]ohlc.Bar, 0, len(arr))
	for i, item := range arr {
		b := ohlc.Bar{
			Time:   item.GetInt64("time"),
			Open:   item.GetFloat64("open"),
			High:   item.GetFloat64("high"),
			Low:    item.GetFloat64("low"),
			Close:  item.GetFloat64("close"),
			Volume: item.GetFloat64("volume"),
		}
		if n := len(bars); n > 0 && b.Time <= bars[n-1].Time {
			return nil, fmt.Errorf("bar %d: time %d is not after %d", i, b.Time, bars[n-1].Time)
		}
		bars = append(bars, b)
	}
	return bars, nil
}
