package handler

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"orientabot/internal/domain"
	"orientabot/internal/dto"
	"orientabot/internal/logger"
	"orientabot/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chat  service.ChatService
	audio service.AudioService
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(chat service.ChatService, audio service.AudioService) *ChatHandler {
	return &ChatHandler{
		chat:  chat,
		audio: audio,
	}
}

// GetTranscript godoc
// @Summary Get the conversation transcript
// @Description Returns the ordered transcript plus the currently playing clip, if any
// @Tags chat
// @Produce json
// @Success 200 {object} dto.TranscriptResponse
// @Router /chat/messages [get]
func (h *ChatHandler) GetTranscript(c *fiber.Ctx) error {
	messages := h.chat.Messages()
	resp := dto.TranscriptResponse{
		Messages:  make([]dto.MessageResponse, 0, len(messages)),
		PlayingID: h.audio.PlayingID(),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, messageToResponse(&m))
	}
	return c.JSON(resp)
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Relays the message (plus any pending attachment) to the assistant and streams the reply as server-sent events: "fragment" events while the reply streams, then a single "done" event with the finalized message, or an "error" event.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {string} string "SSE stream"
// @Router /chat/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// The stream writer runs after the handler returns and the fiber ctx
	// has been recycled, so it must not touch c. The send is detached from
	// the request context anyway: in-flight chat requests are never
	// cancelled.
	ctx := context.Background()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		final, err := h.chat.SendMessage(ctx, req.Text, func(fragment string) {
			writeEvent(w, "fragment", fragment)
		})
		if err != nil {
			var domainErr *domain.DomainError
			code := string(domain.CodeInternal)
			if errors.As(err, &domainErr) {
				code = string(domainErr.Code)
			}
			writeEvent(w, "error", dto.ErrorResponse{Error: code})
			return
		}
		if final != nil {
			writeEvent(w, "done", messageToResponse(final))
		} else {
			writeEvent(w, "done", nil)
		}
	}))

	return nil
}

// Attach godoc
// @Summary Attach a document to the next message
// @Description Stages a PDF to be sent alongside the next chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.AttachmentRequest true "Attachment"
// @Success 204
// @Failure 400 {object} middleware.ErrorResponse
// @Router /chat/attachment [post]
func (h *ChatHandler) Attach(c *fiber.Ctx) error {
	var req dto.AttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return domain.NewInvalidInputError("attachment data must be base64-encoded")
	}

	if err := h.chat.Attach(&domain.Attachment{
		Name:      req.Name,
		MediaType: req.MediaType,
		Data:      data,
	}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearAttachment godoc
// @Summary Discard the pending attachment
// @Tags chat
// @Success 204
// @Router /chat/attachment [delete]
func (h *ChatHandler) ClearAttachment(c *fiber.Ctx) error {
	h.chat.ClearAttachment()
	return c.SendStatus(fiber.StatusNoContent)
}

// Reset godoc
// @Summary Reset the chat session
// @Description Replaces the transcript with a fresh greeting, clears the audio cache and starts a brand-new model conversation
// @Tags chat
// @Produce json
// @Success 200 {object} dto.TranscriptResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /chat/reset [post]
func (h *ChatHandler) Reset(c *fiber.Ctx) error {
	if err := h.chat.Reset(c.UserContext()); err != nil {
		return err
	}
	return h.GetTranscript(c)
}

// PlayAudio godoc
// @Summary Play or stop spoken audio for a message
// @Description Synthesizes (and caches) speech for the message and marks it playing; requesting the currently playing message stops it instead
// @Tags chat
// @Produce audio/wav
// @Param id path string true "Message ID"
// @Success 200 {string} binary "WAV clip"
// @Success 204 "Playback stopped"
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /chat/messages/{id}/audio [post]
func (h *ChatHandler) PlayAudio(c *fiber.Ctx) error {
	id := c.Params("id")

	msg, err := h.chat.Message(id)
	if err != nil {
		return err
	}

	clip, err := h.audio.Play(c.UserContext(), msg.ID, msg.Text)
	if err != nil {
		return err
	}
	if clip == nil {
		// Toggle-to-stop.
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set(fiber.HeaderContentType, "audio/wav")
	return c.Send(clip.WAV())
}

func messageToResponse(m *domain.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
		IsError:   m.IsError,
	}
}

// writeEvent writes one server-sent event and flushes it so fragments reach
// the client as they arrive.
func writeEvent(w *bufio.Writer, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Error("Failed to marshal SSE payload", zap.Error(err))
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if err := w.Flush(); err != nil {
		logger.Get().Debug("SSE client went away", zap.Error(err))
	}
}
