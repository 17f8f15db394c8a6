package imaging

import "bytes"

// Format identifies the true encoded format of an image payload.
type Format string

const (
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpeg"
	FormatWebP    Format = "webp"
	FormatGIF     Format = "gif"
	FormatUnknown Format = ""
)

// MIME returns the canonical media type for the format.
func (f Format) MIME() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	case FormatGIF:
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

var (
	pngSignature  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegSignature = []byte{0xff, 0xd8, 0xff}
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")
	gif87aHeader  = []byte("GIF87a")
	gif89aHeader  = []byte("GIF89a")
)

// Sniff determines the payload's format from its leading bytes. The declared
// content type of the producer is deliberately ignored; remote services have
// been observed labelling WebP responses as PNG.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return FormatPNG
	case bytes.HasPrefix(data, jpegSignature):
		return FormatJPEG
	case len(data) >= 12 && bytes.HasPrefix(data, riffSignature) && bytes.Equal(data[8:12], webpSignature):
		return FormatWebP
	case bytes.HasPrefix(data, gif87aHeader) || bytes.HasPrefix(data, gif89aHeader):
		return FormatGIF
	default:
		return FormatUnknown
	}
}
