package main

import (
	"context"
	"image"
	"log"
	"sync"

	fractal "github.com/marben/fractalfield"
)

type fieldScheduler struct {
	workers int
	region  fractal.Region
	field   *fractal.IntensityField
	fieldW  int
	fieldH  int

	ctx       context.Context
	ctxCancel context.CancelFunc

	totalPoints    int
	finishedPoints int

	unstarted map[image.Rectangle]struct{}
	inProcess map[image.Rectangle]struct{}
	finished  map[image.Rectangle]*fractal.FieldTile
	m         sync.Mutex
}

var _ fractal.FieldProvider = (*fieldScheduler)(nil)

func newFieldScheduler(w, h int, region fractal.Region) *fieldScheduler {
	allTilesSlice := splitRectNoClip(image.Rect(0, 0, w, h), 64, 64)
	allTiles := make(map[image.Rectangle]struct{}, len(allTilesSlice))
	for _, t := range allTilesSlice {
		allTiles[t] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &fieldScheduler{
		region:      region,
		field:       &fractal.IntensityField{Rows: h, Cols: w, Values: make([]float64, w*h)},
		fieldW:      w,
		fieldH:      h,
		unstarted:   allTiles,
		inProcess:   make(map[image.Rectangle]struct{}),
		finished:    make(map[image.Rectangle]*fractal.FieldTile),
		totalPoints: w * h,
		ctx:         ctx,
		ctxCancel:   cancel,
	}
}

func (fs *fieldScheduler) popTile() (tile image.Rectangle, found bool) {
	fs.m.Lock()
	defer fs.m.Unlock()

	// Get unstarted tile
	if len(fs.unstarted) > 0 {
		for tile = range fs.unstarted {
			break
		}
		delete(fs.unstarted, tile)

		// Move popped tile to currently processed tiles
		fs.inProcess[tile] = struct{}{}
		return tile, true
	}

	// If there is no unstarted tile, we work again on a started one
	if len(fs.inProcess) > 0 {
		for tile = range fs.inProcess {
			break
		}

		return tile, true
	}

	return image.Rectangle{}, false
}

// GetField implements fractal.FieldProvider.
// It blocks until every tile has been rendered.
func (fs *fieldScheduler) GetField() (*fractal.IntensityField, error) {
	<-fs.ctx.Done()
	return fs.field, nil
}

func (fs *fieldScheduler) progress() float64 {
	fs.m.Lock()
	defer fs.m.Unlock()
	return float64(fs.finishedPoints) / float64(fs.totalPoints)
}

// finishedTiles returns the tiles completed so far, keyed by rect.
func (fs *fieldScheduler) finishedTiles() map[image.Rectangle]*fractal.FieldTile {
	fs.m.Lock()
	defer fs.m.Unlock()
	out := make(map[image.Rectangle]*fractal.FieldTile, len(fs.finished))
	for r, t := range fs.finished {
		out[r] = t
	}
	return out
}

func (fs *fieldScheduler) tileFinished(tile *fractal.FieldTile) {
	defer log.Printf("finished: %f", fs.progress())

	rect := tile.Rect
	fs.m.Lock()
	defer fs.m.Unlock()

	// Copy the tile values into the global field (both row-major)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		src := (y - rect.Min.Y) * rect.Dx()
		dst := y*fs.fieldW + rect.Min.X
		copy(fs.field.Values[dst:dst+rect.Dx()], tile.Values[src:src+rect.Dx()])
	}

	_, found := fs.inProcess[rect]
	if found {
		fs.finishedPoints += rect.Dx() * rect.Dy()
	}

	delete(fs.inProcess, rect)
	fs.finished[rect] = tile

	if len(fs.unstarted) == 0 && len(fs.inProcess) == 0 {
		fs.ctxCancel()
	}
}

func (fs *fieldScheduler) incActiveWorker() {
	fs.m.Lock()
	fs.workers++
	w := fs.workers
	fs.m.Unlock()

	log.Printf("workers: %d", w)
}

func (fs *fieldScheduler) decActiveWorkers() {
	fs.m.Lock()
	fs.workers--
	w := fs.workers
	fs.m.Unlock()

	log.Printf("workers: %d", w)
}

func (fs *fieldScheduler) activeWorkers() int {
	fs.m.Lock()
	defer fs.m.Unlock()
	return fs.workers
}

// renders unfinished tiles on provided TileRenderer
// can be called from multiple goroutines in parallel
func (fs *fieldScheduler) render(renderer fractal.TileRenderer) error {
	fs.incActiveWorker()
	defer fs.decActiveWorkers()

	for {
		tile, found := fs.popTile()
		if !found {
			break
		}
		fieldTile, err := renderer.RenderTile(fs.region, tile, fs.fieldW, fs.fieldH)
		if err != nil {
			log.Printf("render of tile %s failed: %v", tile, err)
			return nil
		}
		fs.tileFinished(fieldTile)
	}
	return nil
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tile := image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
