package service

import (
	"context"
	"sync"
	"time"

	"orientabot/internal/config"
	"orientabot/internal/domain"
	"orientabot/internal/logger"
	"orientabot/internal/util"

	"go.uber.org/zap"
)

// ChatService is the session controller: it owns the transcript, relays
// user input to the remote model session and assembles streamed replies.
type ChatService interface {
	// Messages returns the transcript in order.
	Messages() []domain.Message
	// Message returns the transcript entry with the given ID.
	Message(id string) (*domain.Message, error)
	// Attach stages a document to be sent with the next message.
	Attach(att *domain.Attachment) error
	// ClearAttachment discards the pending attachment, if any.
	ClearAttachment()
	// SendMessage relays text and any pending attachment to the model.
	// onFragment observes each streamed fragment in delivery order. The
	// returned message is the finalized model reply; remote failures are
	// absorbed into an error-flagged transcript message instead of being
	// raised. It fails with SESSION_BUSY while another send is in flight
	// and EMPTY_MESSAGE when there is nothing to send.
	SendMessage(ctx context.Context, text string, onFragment func(fragment string)) (*domain.Message, error)
	// Reset replaces the transcript with a fresh greeting, clears the
	// audio cache and discards the remote conversation context.
	Reset(ctx context.Context) error
}

type chatService struct {
	model domain.ChatModel
	audio AudioService
	cfg   config.AudioConfig

	mu         sync.Mutex
	session    domain.ModelSession
	transcript *domain.Transcript
	sending    bool
	pending    *domain.Attachment

	// generation invalidates in-flight streams: a reset bumps it, and
	// fragments or finalization belonging to an older generation are
	// discarded instead of mutating the fresh transcript.
	generation uint64
}

// NewChatService creates the single chat session of the process, seeded
// with the greeting message and a fresh remote conversation context.
func NewChatService(ctx context.Context, model domain.ChatModel, audio AudioService, cfg config.AudioConfig) (ChatService, error) {
	session, err := model.NewSession(ctx)
	if err != nil {
		return nil, domain.NewModelServiceError(err)
	}

	return &chatService{
		model:      model,
		audio:      audio,
		cfg:        cfg,
		session:    session,
		transcript: domain.NewTranscript(util.NewULID(), domain.GreetingText),
	}, nil
}

func (s *chatService) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Messages()
}

func (s *chatService) Message(id string) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.transcript.Messages() {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, domain.NewNotFoundError("Message not found: " + id)
}

func (s *chatService) Attach(att *domain.Attachment) error {
	if att == nil || len(att.Data) == 0 {
		return domain.NewInvalidInputError("attachment data is required")
	}
	if att.MediaType != "application/pdf" {
		return domain.NewInvalidAttachmentError(att.MediaType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = att
	return nil
}

func (s *chatService) ClearAttachment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

func (s *chatService) SendMessage(ctx context.Context, text string, onFragment func(string)) (*domain.Message, error) {
	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return nil, domain.NewSessionBusyError()
	}
	if text == "" && s.pending == nil {
		s.mu.Unlock()
		return nil, domain.NewEmptyMessageError()
	}

	// Consume the pending attachment up front so a retry after a failure
	// does not resend stale state.
	att := s.pending
	s.pending = nil

	userText := text
	if userText == "" {
		userText = "Inviato file: " + att.Name
	}
	s.transcript.Append(domain.Message{
		ID:        util.NewULID(),
		Role:      domain.RoleUser,
		Text:      userText,
		CreatedAt: time.Now(),
	})

	s.sending = true
	gen := s.generation
	session := s.session
	s.mu.Unlock()

	// The session must return to Idle on every outcome.
	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	err := session.SendStream(ctx, text, att, func(fragment string) error {
		s.mu.Lock()
		if s.generation != gen {
			// The session was reset mid-stream; drop late fragments.
			s.mu.Unlock()
			return nil
		}
		s.transcript.AppendOrExtendLastModelMessage(fragment)
		s.mu.Unlock()

		// The observer runs unlocked: it may write to a slow client, and
		// it must not stall transcript reads or a reset.
		if onFragment != nil {
			onFragment(fragment)
		}
		return nil
	})

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		logger.Get().Info("Discarding reply that outlived a session reset")
		return nil, nil
	}

	if err != nil {
		logger.Get().Error("Model stream failed", zap.Error(err))
		// Keep any partial reply, but give it a real ID so it stays
		// addressable (e.g. for audio playback).
		s.transcript.FinalizeLastModelMessage(util.NewULID())
		errMsg := domain.Message{
			ID:        util.NewULID(),
			Role:      domain.RoleModel,
			Text:      domain.ErrorText,
			CreatedAt: time.Now(),
			IsError:   true,
		}
		s.transcript.Append(errMsg)
		s.mu.Unlock()
		return &errMsg, nil
	}

	final := s.transcript.FinalizeLastModelMessage(util.NewULID())
	s.mu.Unlock()
	if final == nil {
		// The stream completed without a single fragment.
		return nil, nil
	}

	if s.cfg.AutoPlay && final.Text != "" {
		// Let the transcript settle before audio starts.
		msgID, replyText := final.ID, final.Text
		time.AfterFunc(s.cfg.AutoPlayDelay, func() {
			if _, err := s.audio.Play(context.Background(), msgID, replyText); err != nil {
				logger.Get().Warn("Auto-play failed", zap.String("message_id", msgID), zap.Error(err))
			}
		})
	}

	result := *final
	return &result, nil
}

func (s *chatService) Reset(ctx context.Context) error {
	session, err := s.model.NewSession(ctx)
	if err != nil {
		return domain.NewModelServiceError(err)
	}

	s.mu.Lock()
	s.generation++
	s.session = session
	s.transcript = domain.NewTranscript(util.NewULID(), domain.ResetText)
	s.pending = nil
	s.mu.Unlock()

	s.audio.Reset()
	return nil
}
