package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"unitconv.dev/internal/app"
)

type WebUI struct {
	*app.Application
}

func New(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

// SetWebUIRoutes registers the debug page. It is not mounted in production.
func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
