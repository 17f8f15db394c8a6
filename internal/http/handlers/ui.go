package handlers

import (
	"net/http"

	"github.com/marvel202/banana-compose/internal/web"
)

// Home serves the embedded single-page UI.
func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	page := web.IndexHTML()
	if page == nil {
		a.error(w, http.StatusInternalServerError, "internal", "ui assets unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
