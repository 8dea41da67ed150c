package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"unitconv.dev/internal/appconf"
	"unitconv.dev/internal/restapi"
	"unitconv.dev/internal/webui"
)

func routes(api *restapi.RestAPI) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	if api.Config.Env != appconf.Production {
		webui.New(api.Application).SetWebUIRoutes(router)
	}

	return api.Handler(router)
}
