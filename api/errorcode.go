package api

import "github.com/bitmark-inc/covid-overview/external/covid"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1400: covid.ErrUpstreamFetch.Error(),
		1401: covid.ErrUpstreamStatus.Error(),
		1402: covid.ErrUpstreamDecode.Error(),
	}

	errorInternalServer = errorJSON(999)

	errorUpstreamFetch  = errorJSON(1400)
	errorUpstreamStatus = errorJSON(1401)
	errorUpstreamDecode = errorJSON(1402)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
