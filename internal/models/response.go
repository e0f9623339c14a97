package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// FlowResponse is returned by POST /api/v1/flows/{flow}
type FlowResponse struct {
	Status     string `json:"status"`
	Flow       string `json:"flow"`
	Type       string `json:"type"`
	Result     any    `json:"result"`
	DurationMs int64  `json:"duration_ms"`
}

// FlowInfo describes one flow in GET /api/v1/flows
type FlowInfo struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	RequiresLLM  bool           `json:"requires_llm"`
	InputSchema  map[string]any `json:"input_schema"`
	OutputSchema map[string]any `json:"output_schema"`
}

// FlowListResponse is returned by GET /api/v1/flows
type FlowListResponse struct {
	Status         string     `json:"status"`
	ModelAvailable bool       `json:"model_available"`
	Flows          []FlowInfo `json:"flows"`
}
