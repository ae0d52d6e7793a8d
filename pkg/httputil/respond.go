package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	errs "github.com/matzehuels/barchart/pkg/errors"
)

// MaxBodyBytes limits request bodies read by [DecodeJSON].
const MaxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// StatusFor maps an error to an HTTP status via its code. Errors without a
// code are internal.
func StatusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidSize,
		errs.ErrCodeInvalidRange, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidPath,
		errs.ErrCodeInvalidChartID:
		return http.StatusBadRequest
	case errs.ErrCodeInvalidValues, errs.ErrCodeContentOverflow:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound, errs.ErrCodeChartNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorBody]. Internal errors are reported with
// a generic message so server details do not leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorBody{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if status == http.StatusInternalServerError {
		body = ErrorBody{Code: errs.ErrCodeInternal, Message: "internal error"}
	}
	WriteJSON(w, status, body)
}

// DecodeJSON decodes the request body into v. Bodies over [MaxBodyBytes],
// malformed JSON and unknown fields are INVALID_INPUT errors.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "request body is empty or truncated")
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
