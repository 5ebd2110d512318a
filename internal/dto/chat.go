package dto

import "time"

// SendMessageRequest is the body for sending a chat message.
// @Description Request body for sending a chat message
type SendMessageRequest struct {
	Text string `json:"text"`
}

// AttachmentRequest stages a document for the next chat message.
// @Description Request body for attaching a document (base64-encoded)
type AttachmentRequest struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// MessageResponse represents one transcript entry in the API response
type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	IsError   bool      `json:"is_error,omitempty"`
}

// TranscriptResponse represents the full transcript
type TranscriptResponse struct {
	Messages  []MessageResponse `json:"messages"`
	PlayingID string            `json:"playing_id,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
