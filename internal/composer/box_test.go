package composer

import (
	"errors"
	"testing"

	"github.com/marvel202/banana-compose/internal/domain"
)

func TestBoundingBoxValidate(t *testing.T) {
	cases := []struct {
		name   string
		box    BoundingBox
		w, h   int
		wantOK bool
	}{
		{"inside", BoundingBox{10, 20, 110, 220}, 640, 480, true},
		{"touches edges", BoundingBox{0, 0, 640, 480}, 640, 480, true},
		{"negative origin", BoundingBox{-1, 0, 10, 10}, 640, 480, false},
		{"inverted x", BoundingBox{50, 0, 40, 10}, 640, 480, false},
		{"zero area", BoundingBox{10, 10, 10, 20}, 640, 480, false},
		{"exceeds width", BoundingBox{0, 0, 641, 10}, 640, 480, false},
		{"exceeds height", BoundingBox{0, 0, 10, 481}, 640, 480, false},
	}
	for _, tc := range cases {
		err := tc.box.Validate(tc.w, tc.h)
		if tc.wantOK && err != nil {
			t.Fatalf("%s: Validate returned error: %v", tc.name, err)
		}
		if !tc.wantOK {
			if !errors.Is(err, domain.ErrInvalidBox) {
				t.Fatalf("%s: err = %v, want ErrInvalidBox", tc.name, err)
			}
		}
	}
}

func TestBoundingBoxExtent(t *testing.T) {
	box := BoundingBox{XMin: 10, YMin: 20, XMax: 110, YMax: 220}
	if box.Width() != 100 || box.Height() != 200 {
		t.Fatalf("extent = %dx%d, want 100x200", box.Width(), box.Height())
	}
}
