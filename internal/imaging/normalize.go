package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"

	"github.com/marvel202/banana-compose/internal/domain"
)

// Normalized is the result of converting a remote image payload to PNG.
type Normalized struct {
	PNG          []byte
	SourceFormat Format
	Width        int
	Height       int
}

// ToPNG sniffs the payload's true format, decodes it, flattens any palette,
// grayscale, or alpha-carrying color mode onto an opaque white RGB canvas,
// and re-encodes as PNG. Opaque RGB pixel values survive unchanged.
func ToPNG(data []byte) (*Normalized, error) {
	format := Sniff(data)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: unrecognized signature %s", domain.ErrUndecodableImage, leadingBytes(data))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrUndecodableImage, format, err)
	}

	flat, err := flatten(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	bounds := flat.Bounds()
	return &Normalized{
		PNG:          buf.Bytes(),
		SourceFormat: format,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}, nil
}

// flatten composites the decoded image over a white background so the output
// always carries a plain opaque RGB(A) channel layout regardless of the
// source color mode.
func flatten(img image.Image) (*image.RGBA, error) {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64,
		*image.YCbCr, *image.CMYK, *image.Gray, *image.Gray16, *image.Paletted:
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnsupportedMode, img)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image bounds", domain.ErrUndecodableImage)
	}

	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Over)
	return out, nil
}

// DecodeConfig reports the pixel dimensions of an uploaded image without a
// full decode. Used to validate bounding boxes against the background.
func DecodeConfig(data []byte) (width, height int, format Format, err error) {
	format = Sniff(data)
	if format == FormatUnknown {
		return 0, 0, FormatUnknown, fmt.Errorf("%w: unrecognized signature %s", domain.ErrUndecodableImage, leadingBytes(data))
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, format, fmt.Errorf("%w: decode %s config: %v", domain.ErrUndecodableImage, format, err)
	}
	return cfg.Width, cfg.Height, format, nil
}

func leadingBytes(data []byte) string {
	n := len(data)
	if n > 12 {
		n = 12
	}
	if n == 0 {
		return "(empty)"
	}
	return fmt.Sprintf("% x", data[:n])
}
