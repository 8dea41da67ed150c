package restapi

import (
	"net/http"

	"unitconv.dev/internal/models"
	"unitconv.dev/internal/rates"
	"unitconv.dev/internal/refreshlog"
	"unitconv.dev/internal/utils"
)

const maxRefreshesLimit = 100

func (api *RestAPI) ratesHandler(w http.ResponseWriter, r *http.Request) {
	status := rates.Status{UsingFallback: true}
	if api.RatesManager != nil {
		status = api.RatesManager.Status()
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewRatesEntry(api.CurrentRates(), status)))
}

func (api *RestAPI) refreshesHandler(w http.ResponseWriter, r *http.Request) {
	if api.RefreshLog == nil {
		api.serviceUnavailableResponse(w, r, "refresh log disabled")
		return
	}

	limit, fieldErrors := utils.ParseIntParam(r.URL.Query(), "limit", refreshlog.DefaultLimit, maxRefreshesLimit, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	entries, err := api.RefreshLog.Recent(r.Context(), limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	total, err := api.RefreshLog.Count(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponseWithRange(models.NewRefreshAttempts(entries), total > len(entries)))
}
