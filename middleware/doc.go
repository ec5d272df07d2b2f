// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Response Helpers

All handlers speak the same two envelopes:

	middleware.JSONResponse(w, http.StatusOK, volunteers)   // {"data": ...}
	middleware.ErrorResponse(w, http.StatusBadRequest, msg) // {"error": "..."}

# Request Parsing

	var req models.FilterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil { ... }

# Logging

WithLogging wraps a handler with start/completion log lines tagged with a
per-request id:

	mux.HandleFunc("POST /volunteers", middleware.WithLogging(h.Create))

# CORS

CORS wraps the whole mux to permit cross-origin requests and answer
preflight OPTIONS.
*/
package middleware
