package composer

import (
	"context"
	"fmt"

	"github.com/marvel202/banana-compose/internal/imaging"
	"github.com/marvel202/banana-compose/internal/providers/genai"
	"github.com/marvel202/banana-compose/internal/storage"
)

// Generator abstracts the remote image model so the service can be exercised
// without network access.
type Generator interface {
	GenerateComposite(ctx context.Context, req genai.CompositeRequest) (*genai.ImageResult, error)
}

// Request is the full input of one user action: two uploaded images, the
// placement box, and optional free text.
type Request struct {
	Background []byte
	Object     []byte
	Box        BoundingBox
	Prompt     string
	RequestID  string
	Debug      bool
}

// Result describes the normalized composite written to storage. Trace holds
// step-by-step diagnostics and is populated only when the request had the
// debug flag set.
type Result struct {
	StorageKey   string
	SourceFormat imaging.Format
	Width        int
	Height       int
	Bytes        int
	Trace        []string
}

// Service runs the linear compose flow: validate inputs, build the
// instruction, call the model once, normalize the output to PNG, and replace
// the single stored artifact.
//
// Concurrent requests race on the one output key; the last writer wins. Each
// write is atomic, so a racing download sees a complete file, just possibly
// not its own. This mirrors the single-user tool the service grew out of and
// is deliberately not serialized.
type Service struct {
	gen       Generator
	store     *storage.FileStore
	outputKey string
}

// NewService wires the compose pipeline.
func NewService(gen Generator, store *storage.FileStore, outputKey string) *Service {
	if outputKey == "" {
		outputKey = "generated_composite.png"
	}
	return &Service{gen: gen, store: store, outputKey: outputKey}
}

// OutputKey returns the storage key the latest composite is written to.
func (s *Service) OutputKey() string {
	return s.outputKey
}

// Compose executes one generation action end to end.
func (s *Service) Compose(ctx context.Context, req Request) (*Result, error) {
	var trace []string
	note := func(format string, args ...any) {
		if req.Debug {
			trace = append(trace, fmt.Sprintf(format, args...))
		}
	}

	bgWidth, bgHeight, bgFormat, err := imaging.DecodeConfig(req.Background)
	if err != nil {
		return nil, fmt.Errorf("background image: %w", err)
	}
	note("background: %s %dx%d", bgFormat, bgWidth, bgHeight)

	objWidth, objHeight, objFormat, err := imaging.DecodeConfig(req.Object)
	if err != nil {
		return nil, fmt.Errorf("object image: %w", err)
	}
	note("object: %s %dx%d", objFormat, objWidth, objHeight)

	if err := req.Box.Validate(bgWidth, bgHeight); err != nil {
		return nil, err
	}
	note("box: (%d,%d)-(%d,%d) inside %dx%d", req.Box.XMin, req.Box.YMin, req.Box.XMax, req.Box.YMax, bgWidth, bgHeight)

	instruction := BuildInstruction(req.Box, req.Prompt)
	note("instruction: %d chars", len(instruction))

	generated, err := s.gen.GenerateComposite(ctx, genai.CompositeRequest{
		Instruction: instruction,
		Images: []genai.InlineImage{
			{MIME: bgFormat.MIME(), Data: req.Background},
			{MIME: objFormat.MIME(), Data: req.Object},
		},
		RequestID: req.RequestID,
	})
	if err != nil {
		return nil, err
	}
	note("model response: %d bytes, declared mime %q", len(generated.Data), generated.MIME)

	normalized, err := imaging.ToPNG(generated.Data)
	if err != nil {
		return nil, err
	}
	note("normalized: %s -> png, %dx%d", normalized.SourceFormat, normalized.Width, normalized.Height)

	key, err := s.store.Replace(ctx, s.outputKey, normalized.PNG)
	if err != nil {
		return nil, err
	}
	note("stored: %s (%d bytes)", key, len(normalized.PNG))

	return &Result{
		StorageKey:   key,
		SourceFormat: normalized.SourceFormat,
		Width:        normalized.Width,
		Height:       normalized.Height,
		Bytes:        len(normalized.PNG),
		Trace:        trace,
	}, nil
}
