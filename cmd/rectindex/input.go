package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/peterstace/rstar"
)

type RectDto struct {
	Key    string `json:"key"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (r RectDto) Rect() rstar.Rect {
	return rstar.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

type Input struct {
	Rects   []RectDto `json:"rects"`
	Queries []RectDto `json:"queries"`
}

func readInput(r io.Reader) (*Input, error) {
	var input Input
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return nil, fmt.Errorf("unable to parse input: %w", err)
	}
	for i, rect := range input.Rects {
		if rect.Key == "" {
			return nil, fmt.Errorf("rect #%d has no key", i)
		}
	}
	return &input, nil
}

func (in *Input) items() []rstar.Item[string] {
	items := make([]rstar.Item[string], len(in.Rects))
	for i, r := range in.Rects {
		items[i] = rstar.Item[string]{Rect: r.Rect(), Key: r.Key}
	}
	return items
}
