package restapi

import (
	"net/http"
	"time"

	"unitconv.dev/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(models.NewCurrentTime(time.Now())))
}
