package composer

import (
	"fmt"
	"strings"
)

// BuildInstruction converts the placement box and optional user text into a
// single natural-language instruction for the image model. Pure string
// formatting; it always succeeds and never emits placeholders for absent
// input.
func BuildInstruction(box BoundingBox, text string) string {
	parts := []string{
		"Create a seamless composite image by taking the central object from the second image and integrating it naturally into the first image.",
		fmt.Sprintf("Place the object within the rectangle from top-left (%d, %d) to bottom-right (%d, %d) of the first image. These coordinates are for internal placement only.",
			box.XMin, box.YMin, box.XMax, box.YMax),
	}

	if text = strings.TrimSpace(text); text != "" {
		parts = append(parts, "Guidance for the object: "+text+".")
	}

	parts = append(parts,
		"Do not draw or display any bounding boxes, borders, rectangles, grid lines, coordinate labels, numbers, or text on the final image.",
		"Match the lighting, shadows, perspective, scale, and color temperature of the first image so the object blends in naturally.",
		"Preserve the style and aesthetic of the first image and produce a clean, photorealistic result with no visible editing marks.",
		"Return the result as a PNG image.",
	)

	return strings.Join(parts, " ")
}
