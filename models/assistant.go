package models

// ChatRequest is one user message to the assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the assistant's reply. Demo is true when the reply came
// from the scripted fallback rather than the model.
type ChatResponse struct {
	Message string `json:"message"`
	Demo    bool   `json:"demo"`
}
