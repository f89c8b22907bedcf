package models

// AnalyzeRequest is the body of POST /api/analyze. Input carries a YouTube
// URL plus an optional trailing question in a single free-form string.
type AnalyzeRequest struct {
	Input string `json:"input"`
}

// VideoMeta is the display metadata returned alongside an answer. Duration
// is always the literal "N/A"; this service never computes real duration.
type VideoMeta struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Duration     string `json:"duration"`
}

// AnalyzeResponse is the 200 body of POST /api/analyze.
type AnalyzeResponse struct {
	Analysis string    `json:"analysis"`
	Video    VideoMeta `json:"video"`
}

// ErrorResponse is the 4xx/5xx body. Message is only populated on 5xx
// responses and carries the underlying failure detail for diagnosis.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
