package restapi

import (
	"encoding/json"
	"net/http"

	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	api.writeEnvelope(w, r, response)
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.writeEnvelope(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

// writeEnvelope writes response with response.Code as the HTTP status.
func (api *RestAPI) writeEnvelope(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	body, err := json.Marshal(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	setJSONResponseType(w)
	w.WriteHeader(response.Code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logging.FromContext(r.Context()).Error("failed to write response", "error", err, "path", r.URL.Path)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}
