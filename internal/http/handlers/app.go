package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/marvel202/banana-compose/internal/composer"
	"github.com/marvel202/banana-compose/internal/infra"
	"github.com/marvel202/banana-compose/internal/storage"
)

// App bundles the handler dependencies: configuration, logger, the compose
// pipeline, and the artifact store.
type App struct {
	Config  *infra.Config
	Logger  infra.Logger
	Service *composer.Service
	Store   *storage.FileStore
}

func NewApp(cfg *infra.Config, logger infra.Logger, svc *composer.Service, store *storage.FileStore) *App {
	return &App{Config: cfg, Logger: logger, Service: svc, Store: store}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, errorResponse{Code: slug, Message: msg})
}

// errorWithDetail includes extended diagnostic text only when the debug flag
// for the request is on; the short message is always user-safe.
func (a *App) errorWithDetail(w http.ResponseWriter, code int, slug, msg, detail string, debug bool) {
	resp := errorResponse{Code: slug, Message: msg}
	if debug {
		resp.Detail = detail
	}
	a.json(w, code, resp)
}
