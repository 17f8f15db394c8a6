package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/marvel202/banana-compose/internal/composer"
	"github.com/marvel202/banana-compose/internal/domain"
	"github.com/marvel202/banana-compose/internal/middleware"
)

type composeResponse struct {
	Status       string   `json:"status"`
	SourceFormat string   `json:"source_format"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Bytes        int      `json:"bytes"`
	URL          string   `json:"url"`
	DownloadURL  string   `json:"download_url"`
	RequestID    string   `json:"request_id,omitempty"`
	Trace        []string `json:"trace,omitempty"`
}

// Compose handles one generation action: two uploaded images, the box
// coordinates, and optional prompt text arrive as a multipart form; the
// response reports the normalized result now served at the result URL.
func (a *App) Compose(w http.ResponseWriter, r *http.Request) {
	debug := a.Config.DebugMode
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	if v := r.FormValue("debug"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			debug = b
		}
	}

	background, err := readUpload(r, "background")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "please provide the background image")
		return
	}
	object, err := readUpload(r, "object")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "please provide the object image")
		return
	}

	box, err := parseBox(r)
	if err != nil {
		a.errorWithDetail(w, http.StatusBadRequest, "invalid_box", "please draw a placement box on the background image", err.Error(), debug)
		return
	}

	requestID := middleware.RequestIDFromContext(r.Context())
	result, err := a.Service.Compose(r.Context(), composer.Request{
		Background: background,
		Object:     object,
		Box:        box,
		Prompt:     r.FormValue("prompt"),
		RequestID:  requestID,
		Debug:      debug,
	})
	if err != nil {
		status, slug, msg := composeErrorStatus(err)
		a.Logger.Error().Err(err).Str("request_id", requestID).Str("code", slug).Msg("compose failed")
		a.errorWithDetail(w, status, slug, msg, err.Error(), debug)
		return
	}

	a.json(w, http.StatusOK, composeResponse{
		Status:       "ok",
		SourceFormat: string(result.SourceFormat),
		Width:        result.Width,
		Height:       result.Height,
		Bytes:        result.Bytes,
		URL:          "/v1/result",
		DownloadURL:  "/v1/result/download",
		RequestID:    requestID,
		Trace:        result.Trace,
	})
}

// composeErrorStatus maps the pipeline's error kinds onto HTTP responses.
// Every kind stays distinguishable for the UI; none of them crash the
// process, and the previous artifact remains downloadable.
func composeErrorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidBox):
		return http.StatusBadRequest, "invalid_box", "the placement box does not fit the background image"
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusInternalServerError, "config_error", "the server has no API credential configured"
	case errors.Is(err, domain.ErrNoImageReturned):
		return http.StatusBadGateway, "generation_failed", "the model did not return an image"
	case errors.Is(err, domain.ErrProviderFailure):
		return http.StatusBadGateway, "provider_error", "the generation request failed"
	case errors.Is(err, domain.ErrUnsupportedMode):
		return http.StatusUnprocessableEntity, "unsupported_mode", "the generated image uses an unsupported color mode"
	case errors.Is(err, domain.ErrUndecodableImage):
		return http.StatusUnprocessableEntity, "decode_failed", "an image could not be decoded"
	default:
		return http.StatusInternalServerError, "internal", "unexpected failure"
	}
}

func readUpload(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty upload", field)
	}
	return data, nil
}

func parseBox(r *http.Request) (composer.BoundingBox, error) {
	var box composer.BoundingBox
	fields := []struct {
		name string
		dst  *int
	}{
		{"xmin", &box.XMin},
		{"ymin", &box.YMin},
		{"xmax", &box.XMax},
		{"ymax", &box.YMax},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(r.FormValue(f.name))
		if raw == "" {
			return box, fmt.Errorf("%s is required", f.name)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return box, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return box, nil
}
