// Package models defines the API request and response types.
package models

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply to a chat question. Sources lists the knowledge
// base categories the answer was drawn from, in the order they were used;
// it is empty when nothing relevant was found.
type ChatResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Sources []string `json:"sources"`
}
