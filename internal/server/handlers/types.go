package handlers

import "github.com/vzahanych/weather-widget/internal/view"

// SearchRequest is the city query of the widget endpoints
type SearchRequest struct {
	City string `form:"city" json:"city" validate:"cityname,max=100"`
}

// WeatherResponse is the rendered widget after a search
type WeatherResponse struct {
	Query string `json:"query"`
	view.Snapshot
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
}
