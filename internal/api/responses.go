package api

type ErrorResponse struct {
	Error   string      `json:"error"`
	Field   string      `json:"field,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database,omitempty"`
	Alerts       string `json:"alerts,omitempty"`
	QueuedAlerts int64  `json:"queued_alerts,omitempty"`
}
