package gemini

import (
	"context"
	"fmt"

	"orientabot/internal/domain"

	"google.golang.org/genai"
)

// defaultAttachmentText is sent when a document arrives without any text.
const defaultAttachmentText = "Ecco un documento aggiuntivo. Usalo per rispondere."

// NewSession creates a fresh remote conversation context primed with the
// school system instruction. Each session carries its own history on the
// remote side; resetting the chat means discarding the session and
// creating a new one.
func (c *Client) NewSession(ctx context.Context) (domain.ModelSession, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(), genai.RoleUser),
		Temperature:       genai.Ptr(float32(c.cfg.Temperature)),
	}

	chat, err := c.genai.Chats.Create(ctx, c.cfg.ChatModel, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	return &chatSession{chat: chat}, nil
}

type chatSession struct {
	chat *genai.Chat
}

// SendStream relays the message to the model and forwards every non-empty
// text fragment in delivery order.
func (s *chatSession) SendStream(ctx context.Context, text string, attachment *domain.Attachment, onFragment func(string) error) error {
	parts := buildParts(text, attachment)

	for resp, err := range s.chat.SendMessageStream(ctx, parts...) {
		if err != nil {
			return fmt.Errorf("chat stream failed: %w", err)
		}
		fragment := resp.Text()
		if fragment == "" {
			continue
		}
		if err := onFragment(fragment); err != nil {
			return err
		}
	}
	return nil
}

// buildParts assembles the message payload: plain text, or a document blob
// combined with the text (falling back to a fixed instruction when the
// document arrives alone).
func buildParts(text string, attachment *domain.Attachment) []genai.Part {
	if attachment == nil {
		return []genai.Part{{Text: text}}
	}

	if text == "" {
		text = defaultAttachmentText
	}
	return []genai.Part{
		{InlineData: &genai.Blob{MIMEType: attachment.MediaType, Data: attachment.Data}},
		{Text: text},
	}
}

var _ domain.ChatModel = (*Client)(nil)
