package gemini

import (
	"context"
	"fmt"

	"orientabot/internal/domain"

	"google.golang.org/genai"
)

// Start begins a remote image-to-video generation operation.
func (c *Client) Start(ctx context.Context, req domain.VideoRequest) (*domain.VideoOperation, error) {
	image := &genai.Image{
		ImageBytes: req.ImageBytes,
		MIMEType:   req.ImageMediaType,
	}
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     c.cfg.Resolution,
		AspectRatio:    string(req.AspectRatio),
	}

	op, err := c.genai.Models.GenerateVideos(ctx, c.cfg.VideoModel, req.Prompt, image, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start video generation: %w", err)
	}
	return wrapOperation(op), nil
}

// Poll refreshes the state of a pending operation.
func (c *Client) Poll(ctx context.Context, op *domain.VideoOperation) (*domain.VideoOperation, error) {
	handle, ok := op.Handle.(*genai.GenerateVideosOperation)
	if !ok {
		return nil, fmt.Errorf("operation handle is not a video operation")
	}

	refreshed, err := c.genai.Operations.GetVideosOperation(ctx, handle, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to poll video operation: %w", err)
	}
	return wrapOperation(refreshed), nil
}

// Download fetches the generated video bytes of a completed operation.
func (c *Client) Download(ctx context.Context, op *domain.VideoOperation) ([]byte, error) {
	handle, ok := op.Handle.(*genai.GenerateVideosOperation)
	if !ok {
		return nil, fmt.Errorf("operation handle is not a video operation")
	}

	video := firstVideo(handle)
	if video == nil {
		return nil, fmt.Errorf("video generation returned no video")
	}
	if len(video.VideoBytes) > 0 {
		return video.VideoBytes, nil
	}

	data, err := c.genai.Files.Download(ctx, video, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download generated video: %w", err)
	}
	return data, nil
}

func wrapOperation(op *genai.GenerateVideosOperation) *domain.VideoOperation {
	wrapped := &domain.VideoOperation{
		Handle: op,
		Done:   op.Done,
	}
	if video := firstVideo(op); video != nil {
		wrapped.URI = video.URI
	}
	return wrapped
}

func firstVideo(op *genai.GenerateVideosOperation) *genai.Video {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return nil
	}
	return op.Response.GeneratedVideos[0].Video
}

var _ domain.VideoGenerator = (*Client)(nil)
