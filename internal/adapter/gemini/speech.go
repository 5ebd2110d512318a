package gemini

import (
	"context"
	"fmt"

	"orientabot/internal/domain"

	"google.golang.org/genai"
)

// Synthesize requests spoken audio for the given text. The model returns
// raw 16-bit little-endian mono PCM at 24 kHz.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.cfg.SpeechModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.VoiceName},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech generation failed: %w", err)
	}

	audio := extractInlineData(resp)
	if len(audio) == 0 {
		return nil, fmt.Errorf("no audio generated")
	}
	return audio, nil
}

func extractInlineData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil
	}
	if blob := content.Parts[0].InlineData; blob != nil {
		return blob.Data
	}
	return nil
}

var _ domain.SpeechSynthesizer = (*Client)(nil)
