package fractal

import (
	"image"
)

// FieldTile is one rectangular piece of a larger IntensityField.
// Values are row-major within Rect.
type FieldTile struct {
	Rect   image.Rectangle
	Values []float64
}

// FieldProvider hands out the fully rendered intensity field,
// blocking until the render is complete.
type FieldProvider interface {
	GetField() (*IntensityField, error)
}

// TileRenderer computes the intensities of one tile of a fieldW × fieldH
// view onto r. Implementations must be safe for concurrent use.
type TileRenderer interface {
	RenderTile(r Region, tile image.Rectangle, fieldW, fieldH int) (*FieldTile, error)
}
