package dto

import "time"

// AnimationRequest is the body for starting an image-to-video job.
// @Description Request body for generating a short animation from an image
type AnimationRequest struct {
	Prompt         string `json:"prompt"`
	AspectRatio    string `json:"aspect_ratio"`
	ImageMediaType string `json:"image_media_type"`
	ImageData      string `json:"image_data"` // base64-encoded
}

// AnimationJobResponse represents the state of an animation job
type AnimationJobResponse struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
