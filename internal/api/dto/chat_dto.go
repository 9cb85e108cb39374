package dto

import "time"

// ChatRequest carries one chatbot exchange.
type ChatRequest struct {
	Message   string `json:"message"`
	Context   string `json:"context,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the responder output.
type ChatResponse struct {
	Response  string    `json:"response"`
	SessionID string    `json:"session_id"`
	Context   string    `json:"context"`
	Timestamp time.Time `json:"timestamp"`
}
