/*
Package req binds HTTP request bodies into Go values.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"voxroom/internal/pkg/errs"
)

// MaxJSONBodyBytes bounds the size of a JSON request body.
const MaxJSONBodyBytes int64 = 16 << 10

// BindJSON decodes the JSON request body into dst, rejecting other content types,
// unknown fields, oversized bodies and trailing data.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
