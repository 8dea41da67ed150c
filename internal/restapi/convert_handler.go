package restapi

import (
	"errors"
	"net/http"

	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/models"
	"unitconv.dev/internal/utils"
)

func (api *RestAPI) convertHandler(w http.ResponseWriter, r *http.Request) {
	domain, err := conversion.ParseDomain(utils.ExtractIDFromParams(r, "domain"))
	if err != nil {
		api.sendNotFound(w, r)
		return
	}

	value, from, to, fieldErrors := utils.ValidateConversionParams(r.URL.Query())
	if len(fieldErrors) == 0 {
		for field, unit := range map[string]string{"from": from, "to": to} {
			if !conversion.KnownUnit(domain, unit) {
				fieldErrors[field] = append(fieldErrors[field], "unknown "+string(domain)+" unit")
			}
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result, err := api.Converter.Convert(conversion.Request{
		Domain: string(domain),
		Value:  value,
		From:   from,
		To:     to,
	})
	if verr, ok := conversion.AsValidationError(err); ok {
		api.conversionRuleResponse(w, r, verr)
		return
	}
	if err != nil {
		if errors.Is(err, conversion.ErrUnknownUnit) || errors.Is(err, conversion.ErrUnknownDomain) {
			api.validationErrorResponse(w, r, map[string][]string{"unit": {err.Error()}})
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	if result.Empty() {
		api.sendResponse(w, r, models.NewResponse(http.StatusOK,
			map[string]interface{}{"entry": nil}, "empty input"))
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewConversionEntry(result)))
}
