package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/models"
)

// invalidAPIKeyResponse sends a 401 Unauthorized response
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeEnvelope(w, r, models.NewResponse(http.StatusUnauthorized, nil, "permission denied"))
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	logging.LogError(logger, "internal server error", err, slog.String("path", r.URL.Path))

	response := struct {
		Code        int    `json:"code"`
		CurrentTime int64  `json:"currentTime"`
		Text        string `json:"text"`
		Version     int    `json:"version"`
	}{
		Code:        http.StatusInternalServerError,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "internal server error",
		Version:     2,
	}

	setJSONResponseType(w)
	w.WriteHeader(http.StatusInternalServerError)
	if encoderErr := json.NewEncoder(w).Encode(response); encoderErr != nil {
		logger.Error("failed to encode server error response", "error", encoderErr)
	}
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(w)
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.FromContext(r.Context()).Error("failed to encode validation error response", "error", err)
	}
}

// conversionRuleResponse sends a 422 carrying the domain message and its kind.
func (api *RestAPI) conversionRuleResponse(w http.ResponseWriter, r *http.Request, verr *conversion.ValidationError) {
	api.writeEnvelope(w, r, models.NewResponse(http.StatusUnprocessableEntity,
		models.ValidationErrorData{ErrorKind: string(verr.Kind)}, verr.Message))
}

func (api *RestAPI) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, text string) {
	api.writeEnvelope(w, r, models.NewResponse(http.StatusServiceUnavailable, nil, text))
}
