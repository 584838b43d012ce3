/*
Package resp writes the JSON envelope used by every HTTP endpoint.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"voxroom/internal/pkg/errs"
	"voxroom/internal/pkg/logx"
)

// JSONResponse is the envelope returned by the HTTP API.
type JSONResponse struct {
	// Code is 0 on success and an errs catalogue code otherwise.
	Code int `json:"code"`

	// Message is a client-friendly status description.
	Message string `json:"message"`

	// Data is the optional payload of a successful response.
	Data any `json:"data,omitempty"`
}

// RespondJSON encodes payload with the given HTTP status.
func RespondJSON(w http.ResponseWriter, httpStatus int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpStatus)

	if _, err := w.Write(body); err != nil {
		logx.Warn("Failed to write JSON response", "error", err.Error())
	}
}

// RespondSuccess writes data with HTTP 200 and code 0.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, http.StatusOK, JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// RespondError writes customErr with its own HTTP status. A nil error is reported as ErrUnknown.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, customErr.Status, JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}
