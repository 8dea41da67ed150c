package restapi

import (
	"net/http"

	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/models"
	"unitconv.dev/internal/utils"
)

func (api *RestAPI) unitsHandler(w http.ResponseWriter, r *http.Request) {
	domain, err := conversion.ParseDomain(utils.ExtractIDFromParams(r, "domain"))
	if err != nil {
		api.sendNotFound(w, r)
		return
	}

	units, err := conversion.Units(domain)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewUnitEntries(units)))
}
