package server

import "time"

// HTTPError is a generic error envelope returned by the server.
type HTTPError struct {
	Error string `json:"error"`
}

// AuthLoginRequest represents the login payload.
type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// BlogMetaResponse lists the filter vocabulary for the blog UI.
type BlogMetaResponse struct {
	Categories []string       `json:"categories"`
	Tags       map[string]int `json:"tags"`
}

// ChatRequest is one user message to the scripted assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant's canned reply. Matched is false when the
// fallback fired, which the widget uses to style the bubble.
type ChatResponse struct {
	ID        string    `json:"id"`
	Reply     string    `json:"reply"`
	Matched   bool      `json:"matched"`
	Timestamp time.Time `json:"timestamp"`
}

// ContactRequest is the briefing/contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// IDResponse is a generic id response wrapper.
type IDResponse struct {
	ID string `json:"id"`
}
