package composer

import (
	"strings"
	"testing"
)

func TestBuildInstructionContainsCoordinatesAndText(t *testing.T) {
	box := BoundingBox{XMin: 10, YMin: 20, XMax: 110, YMax: 220}
	got := BuildInstruction(box, "a red hat")

	checks := []string{"10", "20", "110", "220", "a red hat"}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("instruction missing %q: %s", expect, got)
		}
	}
	for _, placeholder := range []string{"%!", "<nil>", "{{", "%d", "%s"} {
		if strings.Contains(got, placeholder) {
			t.Fatalf("instruction contains placeholder %q: %s", placeholder, got)
		}
	}
}

func TestBuildInstructionSuppressesMarkup(t *testing.T) {
	got := BuildInstruction(BoundingBox{XMin: 1, YMin: 2, XMax: 3, YMax: 4}, "")

	for _, expect := range []string{"bounding boxes", "grid lines", "coordinate labels"} {
		if !strings.Contains(got, expect) {
			t.Fatalf("instruction missing markup suppression %q: %s", expect, got)
		}
	}
}

func TestBuildInstructionOmitsEmptyGuidance(t *testing.T) {
	got := BuildInstruction(BoundingBox{XMin: 0, YMin: 0, XMax: 5, YMax: 5}, "   ")
	if strings.Contains(got, "Guidance for the object") {
		t.Fatalf("blank text must not produce a guidance line: %s", got)
	}
}
