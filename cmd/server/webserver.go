package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// webServer serves the static viewer page, a websocket endpoint pushing
// render progress, and the finished field as a grayscale PNG.
func webServer(port int, fs *fieldScheduler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(fs))
	mux.HandleFunc("/field.png", fieldPNGHandler(fs))
	mux.Handle("/", http.FileServer(http.Dir("./static")))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", port)
	return srv
}

// initMsg is sent once after the websocket handshake.
type initMsg struct {
	Type   string `json:"type"` // "init"
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// tileMsg carries one finished tile's intensities, row-major within the
// tile rectangle.
type tileMsg struct {
	Type   string    `json:"type"` // "tile"
	X      int       `json:"x"`
	Y      int       `json:"y"`
	W      int       `json:"w"`
	H      int       `json:"h"`
	Values []float64 `json:"values"`
}

// statusMsg reports overall progress and active worker count.
type statusMsg struct {
	Type     string  `json:"type"` // "status"
	Progress float64 `json:"progress"`
	Workers  int     `json:"workers"`
}

// websocketHandler pushes tiles to the browser as they finish, instead
// of having the client poll for them.
func websocketHandler(fs *fieldScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		if err := pushTiles(r.Context(), c, fs); err != nil {
			log.Printf("ws push: %v", err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "render complete")
	}
}

// pushTiles streams every finished tile exactly once, interleaved with
// status updates, until the full field is rendered or the client goes
// away.
func pushTiles(ctx context.Context, c *websocket.Conn, fs *fieldScheduler) error {
	if err := wsjson.Write(ctx, c, initMsg{Type: "init", Width: fs.fieldW, Height: fs.fieldH}); err != nil {
		return fmt.Errorf("write init: %w", err)
	}

	sent := make(map[image.Rectangle]struct{})
	for {
		for rect, tile := range fs.finishedTiles() {
			if _, found := sent[rect]; found {
				continue
			}
			msg := tileMsg{
				Type:   "tile",
				X:      rect.Min.X,
				Y:      rect.Min.Y,
				W:      rect.Dx(),
				H:      rect.Dy(),
				Values: tile.Values,
			}
			if err := wsjson.Write(ctx, c, msg); err != nil {
				return fmt.Errorf("write tile %s: %w", rect, err)
			}
			sent[rect] = struct{}{}
		}

		status := statusMsg{Type: "status", Progress: fs.progress(), Workers: fs.activeWorkers()}
		if err := wsjson.Write(ctx, c, status); err != nil {
			return fmt.Errorf("write status: %w", err)
		}

		if status.Progress >= 1 {
			return nil
		}

		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-time.After(250 * time.Millisecond):
		}
	}
}

// fieldPNGHandler blocks until the render is done and responds with the
// field as an 8-bit grayscale PNG.
func fieldPNGHandler(fs *fieldScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		field, err := fs.GetField()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		img := image.NewGray(image.Rect(0, 0, field.Cols, field.Rows))
		for y := 0; y < field.Rows; y++ {
			for x := 0; x < field.Cols; x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(field.At(y, x) * 255)})
			}
		}

		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			log.Printf("png encode: %v", err)
		}
	}
}
