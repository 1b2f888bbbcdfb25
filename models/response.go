package models

// HealthCheckResponse returns the response for the healthcheck route
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
