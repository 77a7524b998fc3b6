// Package httputil holds the response and middleware helpers of the HTTP
// API.
//
// Handlers write results with [WriteJSON] and failures with [WriteError],
// which maps the codes of [errors.Error] to HTTP statuses so every endpoint
// reports the same error body:
//
//	{"error": {"code": "VARIANT_OUT_OF_RANGE", "message": "design variant 400 out of range: valid range is [0, 251)"}}
//
// [Instrument] tags each request with an X-Request-ID, logs it and reports
// it to the registered [observability.HTTPHooks].
package httputil
