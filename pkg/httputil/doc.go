// Package httputil provides the HTTP plumbing shared by barchart servers.
//
// # Responses
//
// [WriteJSON] writes a value with the right content type and status.
// [WriteError] writes an error as
//
//	{"code": "INVALID_VALUES", "message": "got 2 values for 3 bars"}
//
// with the status [StatusFor] derives from its code, so handlers return
// coded errors from pkg/errors and never pick status codes themselves.
//
// # Requests
//
// [DecodeJSON] reads a size-limited JSON body and rejects unknown fields.
//
// # Middleware
//
// [RequestID] tags each request with an ID (X-Request-ID, generated with
// google/uuid when the client sends none) that [RequestIDFrom] returns and
// log lines carry.
package httputil
