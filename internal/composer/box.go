package composer

import (
	"fmt"

	"github.com/marvel202/banana-compose/internal/domain"
)

// BoundingBox is the user-drawn placement region, in pixel coordinates of the
// background image.
type BoundingBox struct {
	XMin int `json:"xmin"`
	YMin int `json:"ymin"`
	XMax int `json:"xmax"`
	YMax int `json:"ymax"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() int { return b.XMax - b.XMin }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() int { return b.YMax - b.YMin }

// Validate checks the box is non-inverted, non-empty, and fully inside a
// background of the given dimensions.
func (b BoundingBox) Validate(imageWidth, imageHeight int) error {
	if b.XMin < 0 || b.YMin < 0 {
		return fmt.Errorf("%w: negative origin (%d, %d)", domain.ErrInvalidBox, b.XMin, b.YMin)
	}
	if b.XMax <= b.XMin || b.YMax <= b.YMin {
		return fmt.Errorf("%w: empty or inverted region (%d,%d)-(%d,%d)", domain.ErrInvalidBox, b.XMin, b.YMin, b.XMax, b.YMax)
	}
	if b.XMax > imageWidth || b.YMax > imageHeight {
		return fmt.Errorf("%w: region (%d,%d)-(%d,%d) exceeds background %dx%d",
			domain.ErrInvalidBox, b.XMin, b.YMin, b.XMax, b.YMax, imageWidth, imageHeight)
	}
	return nil
}
