package domain

import "errors"

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrProviderFailure   = errors.New("provider failure")
	ErrNoImageReturned   = errors.New("no image returned")
	ErrUndecodableImage  = errors.New("undecodable image")
	ErrUnsupportedMode   = errors.New("unsupported color mode")
	ErrInvalidBox        = errors.New("invalid bounding box")
	ErrNoResult          = errors.New("no composite generated yet")
)
