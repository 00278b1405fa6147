package server

// HTTPError is the unified error body returned by the API.
type HTTPError struct {
	Error string `json:"error"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query      string `json:"query"`
	Language   string `json:"language"`
	MaxResults int    `json:"maxResults"`
}

// ChatProcessRequest is the body of POST /api/chat/process.
type ChatProcessRequest struct {
	Message   string `json:"message"`
	Language  string `json:"language"`
	SessionID string `json:"sessionId"`
}

// SessionResponse carries a session id.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}
