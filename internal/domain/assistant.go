package domain

import "context"

// ModelSession is the handle to one remote conversation context. The remote
// side is the system-of-record for prior turns; the local transcript only
// mirrors it. A session is not safe for concurrent sends.
type ModelSession interface {
	// SendStream sends text and an optional attachment to the model and
	// invokes onFragment for every streamed reply fragment, in delivery
	// order. It returns once the stream terminates.
	SendStream(ctx context.Context, text string, attachment *Attachment, onFragment func(fragment string) error) error
}

// ChatModel creates remote conversation contexts primed with the static
// system instruction.
type ChatModel interface {
	NewSession(ctx context.Context) (ModelSession, error)
}

// SpeechSynthesizer turns text into raw 16-bit little-endian mono PCM.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AspectRatio is the closed set of supported video aspect ratios.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// ParseAspectRatio validates a client-supplied aspect ratio.
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch AspectRatio(s) {
	case AspectLandscape, AspectPortrait:
		return AspectRatio(s), nil
	default:
		return "", NewInvalidInputError("aspect_ratio must be 16:9 or 9:16")
	}
}

// VideoRequest describes an image-to-video generation request.
type VideoRequest struct {
	Prompt         string
	ImageBytes     []byte
	ImageMediaType string
	AspectRatio    AspectRatio
}

// VideoOperation is the remote long-running-operation handle. Handle is
// opaque to callers and only meaningful to the generator that issued it.
type VideoOperation struct {
	Handle any
	Done   bool
	URI    string
}

// VideoGenerator starts and tracks remote video generation operations.
type VideoGenerator interface {
	Start(ctx context.Context, req VideoRequest) (*VideoOperation, error)
	Poll(ctx context.Context, op *VideoOperation) (*VideoOperation, error)
	Download(ctx context.Context, op *VideoOperation) ([]byte, error)
}
