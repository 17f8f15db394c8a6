package imaging

import "testing"

func TestSniffKnownSignatures(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}, FormatPNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0, 1}, FormatJPEG},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), FormatWebP},
		{"gif87a", []byte("GIF87a\x01\x00\x01\x00\x00\x00"), FormatGIF},
		{"gif89a", []byte("GIF89a\x01\x00\x01\x00\x00\x00"), FormatGIF},
	}
	for _, tc := range cases {
		if got := Sniff(tc.data); got != tc.want {
			t.Fatalf("Sniff(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSniffIgnoresDeclaredType(t *testing.T) {
	// A payload labelled image/png by a remote service but actually WebP
	// must be reported as WebP. Sniff only ever sees bytes, so it cannot
	// be misled by a stale header.
	webp := []byte("RIFF\x2a\x00\x00\x00WEBPVP8L")
	if got := Sniff(webp); got != FormatWebP {
		t.Fatalf("Sniff = %q, want %q", got, FormatWebP)
	}
}

func TestSniffUnknown(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0xde, 0xad, 0xbe, 0xef},
		[]byte("RIFF\x24\x00\x00\x00WAVE"), // RIFF container that is not WebP
		[]byte("RIFF\x24\x00\x00"),         // truncated before the WEBP tag
	}
	for _, data := range cases {
		if got := Sniff(data); got != FormatUnknown {
			t.Fatalf("Sniff(% x) = %q, want unknown", data, got)
		}
	}
}

func TestFormatMIME(t *testing.T) {
	if got := FormatWebP.MIME(); got != "image/webp" {
		t.Fatalf("MIME = %q", got)
	}
	if got := FormatUnknown.MIME(); got != "application/octet-stream" {
		t.Fatalf("MIME = %q", got)
	}
}
