package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTopScorerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/positions", handler.ListPositions)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/topscorers", handler.GetTopScorers)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/topscorers/by-position", handler.ListTopScorersByPosition)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/scoringPeriods/{periodID}/positions/{position}/topscorers", handler.GetTopScorersForPeriod)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/startWeek/{startWeek}/endWeek/{endWeek}/positions/{position}/topscorers", handler.GetTopScorersForRange)
}
