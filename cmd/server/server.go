// server renders an escape-time intensity field with a pool of local
// workers and serves the result over HTTP: progressive tile updates are
// pushed to browsers over a websocket, the finished field is available
// as a grayscale PNG.

package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sync"

	fractal "github.com/marben/fractalfield"
)

var regions = map[string]fractal.Region{
	"full":     fractal.FullSet,
	"seahorse": fractal.SeahorseValley,
	"elephant": fractal.ElephantValley,
	"minibrot": fractal.SpiralMinibrot,
	"triple":   fractal.TripleSpiral,
	"dragon":   fractal.ValleyOfTheDragon,
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		port       = flag.Int("port", 8080, "http listen port")
		width      = flag.Int("width", 1920, "field width in samples")
		height     = flag.Int("height", 1080, "field height in samples")
		maxIter    = flag.Int("iter", 1000, "iteration budget per sample")
		regionName = flag.String("region", "seahorse", "named region to render")
		juliaSeed  = flag.String("julia", "", "julia seed as 're,im'; empty renders the mandelbrot form")
	)
	flag.Parse()

	region, ok := regions[*regionName]
	if !ok {
		return fmt.Errorf("unknown region %q", *regionName)
	}

	renderer := kernelRenderer{maxIter: *maxIter}
	if *juliaSeed != "" {
		seed, err := parseSeed(*juliaSeed)
		if err != nil {
			return err
		}
		renderer.julia = true
		renderer.seed = seed
		// Julia renders map the whole plane window, not a set landmark
		region = fractal.Region{Xmin: -1.6, Xmax: 1.6, Ymin: -1.2, Ymax: 1.2}
	}

	scheduler := newFieldScheduler(*width, *height, region)

	// Local worker pool; every worker pulls tiles until none remain.
	workers := runtime.NumCPU()
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := scheduler.render(renderer); err != nil {
				log.Printf("worker: %v", err)
			}
		}()
	}
	go func() {
		wg.Wait()
		log.Printf("render complete")
	}()

	srv := webServer(*port, scheduler)
	return srv.ListenAndServe()
}

// parseSeed reads a complex seed written as "re,im".
func parseSeed(s string) (complex128, error) {
	var re, im float64
	if _, err := fmt.Sscanf(s, "%f,%f", &re, &im); err != nil {
		return 0, fmt.Errorf("julia seed %q: want 're,im': %w", s, err)
	}
	return complex(re, im), nil
}
