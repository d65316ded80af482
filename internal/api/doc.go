// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

/*
Package api serves chart-ready statistics to browser front ends.

Routes:

	GET /healthz            liveness plus breaker and refresh state
	GET /metrics            Prometheus metrics
	GET /api/v1/dashboard   stats.Dashboard built from GET /api/stats
	GET /api/v1/quote       today's featured quote

Dashboard and quote responses are cached for server.cache_ttl and the
dashboard is also refreshed in the background by the supervisor. The
/api/v1 group is rate limited per client IP with go-chi/httprate. CORS
origins come from server.cors_origins.

Every JSON response uses the same envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "cached": true, ...}}
	{"success": false, "error": {"code": "EXTERNAL_SERVICE_FAILED", "message": "..."}}
*/
package api
