package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/convert/:domain", validateAPIKey(api, api.convertHandler))
	router.Handler(http.MethodGet, "/api/units/:domain", validateAPIKey(api, api.unitsHandler))
	router.Handler(http.MethodGet, "/api/rates", validateAPIKey(api, api.ratesHandler))
	router.Handler(http.MethodGet, "/api/rates/refreshes", validateAPIKey(api, api.refreshesHandler))
	router.Handler(http.MethodGet, "/api/current-time", validateAPIKey(api, api.currentTimeHandler))

	router.NotFound = http.HandlerFunc(api.sendNotFound)
}
