package main

import (
	"fmt"
	"image"

	fractal "github.com/marben/fractalfield"
)

// kernelRenderer renders tiles with the in-process escape-time kernel.
// julia selects the Julia form with seed as the fixed constant; otherwise
// the Mandelbrot form is used.
type kernelRenderer struct {
	maxIter int
	julia   bool
	seed    complex128
}

// tileGrid maps the tile's pixels (global field coordinates) onto the
// region, the same mapping for every tile so they line up exactly.
func tileGrid(r fractal.Region, tile image.Rectangle, fieldW, fieldH int) *fractal.Grid {
	g := &fractal.Grid{
		Rows:    tile.Dy(),
		Cols:    tile.Dx(),
		Step:    (r.Xmax - r.Xmin) / float64(fieldW),
		Samples: make([]complex128, tile.Dx()*tile.Dy()),
	}

	i := 0
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		yf := r.Ymax - (float64(py)/float64(fieldH))*(r.Ymax-r.Ymin)

		for px := tile.Min.X; px < tile.Max.X; px++ {
			xf := r.Xmin + (float64(px)/float64(fieldW))*(r.Xmax-r.Xmin)

			g.Samples[i] = complex(xf, yf)
			i++
		}
	}
	return g
}

// RenderTile implements fractal.TileRenderer.
func (kr kernelRenderer) RenderTile(r fractal.Region, tile image.Rectangle, fieldW, fieldH int) (*fractal.FieldTile, error) {
	grid := tileGrid(r, tile, fieldW, fieldH)

	var field *fractal.IntensityField
	var err error
	if kr.julia {
		field, err = fractal.RenderJuliaField(grid, kr.seed, kr.maxIter)
	} else {
		field, err = fractal.RenderField(grid, kr.maxIter)
	}
	if err != nil {
		return nil, fmt.Errorf("render tile %s: %w", tile, err)
	}

	return &fractal.FieldTile{Rect: tile, Values: field.Values}, nil
}

var _ fractal.TileRenderer = kernelRenderer{}
