// render is a one-shot CLI renderer. It samples a region of the complex
// plane, computes the escape-time intensity field and saves it as a
// grayscale PNG file.

package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	fractal "github.com/marben/fractalfield"
)

func main() {
	log.Printf("Starting renderer...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	var (
		xmin      = flag.Float64("xmin", fractal.FullSet.Xmin, "region left edge")
		xmax      = flag.Float64("xmax", fractal.FullSet.Xmax, "region right edge")
		ymin      = flag.Float64("ymin", fractal.FullSet.Ymin, "region bottom edge")
		ymax      = flag.Float64("ymax", fractal.FullSet.Ymax, "region top edge")
		cols      = flag.Int("cols", 1200, "number of sample columns")
		maxIter   = flag.Int("iter", 1000, "iteration budget per sample")
		juliaSeed = flag.String("julia", "", "julia seed as 're,im'; empty renders the mandelbrot form")
		out       = flag.String("o", "field.png", "output PNG filename")
	)
	flag.Parse()

	region := fractal.Region{Xmin: *xmin, Xmax: *xmax, Ymin: *ymin, Ymax: *ymax}

	// Step 1: Discretize the region
	log.Printf("Sampling region %+v at %d columns...", region, *cols)
	grid, err := region.Grid(*cols)
	if err != nil {
		return fmt.Errorf("sample region: %w", err)
	}
	log.Printf("Grid: %d x %d samples, step %g", grid.Rows, grid.Cols, grid.Step)

	// Step 2: Compute the intensity field
	var field *fractal.IntensityField
	if *juliaSeed != "" {
		var re, im float64
		if _, err := fmt.Sscanf(*juliaSeed, "%f,%f", &re, &im); err != nil {
			return fmt.Errorf("julia seed %q: want 're,im': %w", *juliaSeed, err)
		}
		log.Printf("Rendering julia field, seed (%g, %g), %d iterations...", re, im, *maxIter)
		field, err = fractal.RenderJuliaField(grid, complex(re, im), *maxIter)
	} else {
		log.Printf("Rendering mandelbrot field, %d iterations...", *maxIter)
		field, err = fractal.RenderField(grid, *maxIter)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// Step 3: Save the field as a grayscale PNG
	log.Printf("Saving field to %q...", *out)
	img := image.NewGray(image.Rect(0, 0, field.Cols, field.Rows))
	for y := 0; y < field.Rows; y++ {
		for x := 0; x < field.Cols; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(field.At(y, x) * 255)})
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	log.Printf("Field saved to %q", *out)
	return nil
}
