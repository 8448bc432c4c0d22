// viewer is an interactive display for the escape-time kernel.
// Drag to pan, scroll to zoom, J toggles between the Mandelbrot and
// Julia forms, R resets the view.

package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	fractal "github.com/marben/fractalfield"
)

const (
	screenWidth  = 800
	screenHeight = 600
	defaultIter  = 256
)

type Game struct {
	center  complex128
	zoom    float64 // pixels per complex unit
	maxIter int
	julia   bool
	seed    complex128

	fieldImage *ebiten.Image

	mu           sync.Mutex
	calcRunning  bool
	needsRecalc  bool
	dragStartPos image.Point
	isDragging   bool
}

func NewGame() *Game {
	g := &Game{
		center:      complex(-0.5, 0),
		zoom:        250.0,
		maxIter:     defaultIter,
		seed:        fractal.DouadyRabbit,
		fieldImage:  ebiten.NewImage(screenWidth, screenHeight),
		needsRecalc: true,
	}
	return g
}

// screenToComplex converts a pixel coordinate to its plane position.
func (g *Game) screenToComplex(px, py int) complex128 {
	x := float64(px-screenWidth/2)/g.zoom + real(g.center)
	y := imag(g.center) - float64(py-screenHeight/2)/g.zoom
	return complex(x, y)
}

func (g *Game) Update() error {
	var viewChanged bool

	_, scrollY := ebiten.Wheel()
	if scrollY != 0 {
		factor := 1.2
		if scrollY < 0 {
			factor = 1 / factor
		}
		g.zoom *= factor
		// Deeper zooms need a bigger iteration budget
		g.maxIter = int(math.Max(defaultIter, 60*math.Log2(g.zoom)))
		viewChanged = true
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragStartPos.X, g.dragStartPos.Y = ebiten.CursorPosition()
		g.isDragging = true
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.isDragging = false
	} else if g.isDragging {
		curX, curY := ebiten.CursorPosition()
		g.center -= g.screenToComplex(curX, curY) - g.screenToComplex(g.dragStartPos.X, g.dragStartPos.Y)
		g.dragStartPos = image.Point{X: curX, Y: curY}
		viewChanged = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.julia = !g.julia
		if g.julia {
			// Julia sets live around the origin
			g.center = 0
		} else {
			g.center = complex(-0.5, 0)
		}
		viewChanged = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.center = complex(-0.5, 0)
		if g.julia {
			g.center = 0
		}
		g.zoom = 250.0
		g.maxIter = defaultIter
		viewChanged = true
	}

	g.mu.Lock()
	if viewChanged {
		g.needsRecalc = true
	}
	start := g.needsRecalc && !g.calcRunning
	if start {
		g.calcRunning = true
		g.needsRecalc = false
	}
	g.mu.Unlock()

	if start {
		go g.recalc()
	}

	return nil
}

// viewGrid builds the sample grid for the current viewport.
func viewGrid(center complex128, zoom float64) *fractal.Grid {
	step := 1 / zoom
	g := &fractal.Grid{
		Rows:    screenHeight,
		Cols:    screenWidth,
		Step:    step,
		Samples: make([]complex128, screenWidth*screenHeight),
	}
	i := 0
	for py := 0; py < screenHeight; py++ {
		im := imag(center) - float64(py-screenHeight/2)*step
		for px := 0; px < screenWidth; px++ {
			g.Samples[i] = complex(real(center)+float64(px-screenWidth/2)*step, im)
			i++
		}
	}
	return g
}

// recalc renders the viewport in the background and swaps the result in
// when done.
func (g *Game) recalc() {
	defer func() {
		g.mu.Lock()
		g.calcRunning = false
		g.mu.Unlock()
	}()

	g.mu.Lock()
	center, zoom, maxIter := g.center, g.zoom, g.maxIter
	julia, seed := g.julia, g.seed
	g.mu.Unlock()

	grid := viewGrid(center, zoom)

	var field *fractal.IntensityField
	var err error
	if julia {
		field, err = fractal.RenderJuliaField(grid, seed, maxIter)
	} else {
		field, err = fractal.RenderField(grid, maxIter)
	}
	if err != nil {
		log.Printf("render: %v", err)
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, field.Cols, field.Rows))
	for y := 0; y < field.Rows; y++ {
		for x := 0; x < field.Cols; x++ {
			img.SetRGBA(x, y, colorize(field.At(y, x)))
		}
	}

	g.mu.Lock()
	g.fieldImage.WritePixels(img.Pix)
	g.mu.Unlock()
}

// colorize maps a normalized intensity to a palette color. Bounded
// points (intensity 0) stay black.
func colorize(v float64) color.RGBA {
	if v == 0 {
		return color.RGBA{A: 255}
	}
	hue := math.Mod(0.6+0.8*math.Sqrt(v), 1)
	return hsv(hue, 1, 0.4+0.6*v)
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.fieldImage, &ebiten.DrawImageOptions{})

	mode := "mandelbrot"
	if g.julia {
		mode = fmt.Sprintf("julia %v", g.seed)
	}
	status := fmt.Sprintf("FPS: %.0f  %s  iter: %d  zoom: %.0f  center: (%.6f, %.6f)",
		ebiten.ActualFPS(), mode, g.maxIter, g.zoom, real(g.center), imag(g.center))
	text.Draw(screen, status, basicfont.Face7x13, 8, screenHeight-8, color.White)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("fractalfield viewer")
	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
