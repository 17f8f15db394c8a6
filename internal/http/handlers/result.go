package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/marvel202/banana-compose/pkg/zip"
)

// Result serves the most recent composite PNG inline. There is exactly one
// artifact; each generation atomically replaces it.
func (a *App) Result(w http.ResponseWriter, r *http.Request) {
	a.serveComposite(w, r, false)
}

// ResultDownload serves the same bytes with an attachment disposition.
func (a *App) ResultDownload(w http.ResponseWriter, r *http.Request) {
	a.serveComposite(w, r, true)
}

func (a *App) serveComposite(w http.ResponseWriter, r *http.Request, attachment bool) {
	key := a.Service.OutputKey()
	data, err := a.Store.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.error(w, http.StatusNotFound, "not_found", "no composite generated yet")
			return
		}
		a.Logger.Error().Err(err).Msg("failed to read composite")
		a.error(w, http.StatusInternalServerError, "internal", "failed to read composite")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	// The file is overwritten in place by the next generation; never cache.
	w.Header().Set("Cache-Control", "no-store")
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type archiveManifest struct {
	Filename   string    `json:"filename"`
	Bytes      int       `json:"bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ResultArchive bundles the composite and a small manifest into a zip for
// users who want the artifact plus its metadata in one download.
func (a *App) ResultArchive(w http.ResponseWriter, r *http.Request) {
	key := a.Service.OutputKey()
	data, err := a.Store.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.error(w, http.StatusNotFound, "not_found", "no composite generated yet")
			return
		}
		a.Logger.Error().Err(err).Msg("failed to read composite")
		a.error(w, http.StatusInternalServerError, "internal", "failed to read composite")
		return
	}

	manifest := archiveManifest{Filename: path.Base(key), Bytes: len(data)}
	if info, err := a.Store.Stat(key); err == nil {
		manifest.ModifiedAt = info.ModTime().UTC()
	}
	manifestJSON, _ := json.MarshalIndent(manifest, "", "  ")

	archive, err := zip.Archive([]zip.File{
		{Name: path.Base(key), Data: data},
		{Name: "manifest.json", Data: manifestJSON},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to build archive")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=composite.zip")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
