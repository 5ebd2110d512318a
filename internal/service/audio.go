package service

import (
	"context"
	"sync"
	"time"

	"orientabot/internal/config"
	"orientabot/internal/domain"
	"orientabot/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AudioService manages speech playback for transcript messages: a lazy
// per-message clip cache and the single playback slot. At most one clip is
// playing at any instant.
type AudioService interface {
	// Play starts playback for the message, synthesizing and caching the
	// clip on first request. Requesting the currently playing message
	// stops it instead (toggle semantics); the returned clip is nil in
	// that case. Starting a clip stops whatever else was playing.
	Play(ctx context.Context, messageID, text string) (*domain.Clip, error)
	// Stop halts playback and clears the playing marker.
	Stop()
	// PlayingID returns the currently playing message ID, or "".
	PlayingID() string
	// IsLoading reports whether synthesis for the message is in flight.
	IsLoading(messageID string) bool
	// Reset stops playback and drops every cached clip.
	Reset()
}

type audioService struct {
	synth domain.SpeechSynthesizer
	cfg   config.AudioConfig
	group singleflight.Group

	mu        sync.Mutex
	cache     map[string]*domain.Clip
	loading   map[string]bool
	playingID string
	stopTimer *time.Timer
}

// NewAudioService creates an AudioService with an empty cache.
func NewAudioService(synth domain.SpeechSynthesizer, cfg config.AudioConfig) AudioService {
	return &audioService{
		synth:   synth,
		cfg:     cfg,
		cache:   make(map[string]*domain.Clip),
		loading: make(map[string]bool),
	}
}

func (s *audioService) Play(ctx context.Context, messageID, text string) (*domain.Clip, error) {
	s.mu.Lock()
	if s.playingID == messageID {
		s.stopLocked()
		s.mu.Unlock()
		return nil, nil
	}
	s.stopLocked()
	s.loading[messageID] = true
	clip := s.cache[messageID]
	s.mu.Unlock()

	// The loading flag clears on every path: hit, miss and failure.
	defer func() {
		s.mu.Lock()
		delete(s.loading, messageID)
		s.mu.Unlock()
	}()

	if clip == nil {
		v, err, _ := s.group.Do(messageID, func() (interface{}, error) {
			raw, err := s.synth.Synthesize(ctx, text)
			if err != nil {
				return nil, err
			}
			return domain.NewClip(raw, s.cfg.SampleRate), nil
		})
		if err != nil {
			// Recovered silently: no transcript impact, no playing-state
			// change beyond the stop that already happened.
			logger.Get().Error("Speech generation failed",
				zap.String("message_id", messageID),
				zap.Error(err),
			)
			return nil, domain.NewSpeechServiceError(err)
		}
		clip = v.(*domain.Clip)

		s.mu.Lock()
		s.cache[messageID] = clip
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.playingID = messageID
	s.stopTimer = time.AfterFunc(clip.Duration(), func() {
		// Natural end of clip.
		s.mu.Lock()
		if s.playingID == messageID {
			s.playingID = ""
			s.stopTimer = nil
		}
		s.mu.Unlock()
	})
	s.mu.Unlock()

	return clip, nil
}

func (s *audioService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *audioService) stopLocked() {
	if s.stopTimer != nil {
		s.stopTimer.Stop()
		s.stopTimer = nil
	}
	s.playingID = ""
}

func (s *audioService) PlayingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playingID
}

func (s *audioService) IsLoading(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[messageID]
}

func (s *audioService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.cache = make(map[string]*domain.Clip)
	s.loading = make(map[string]bool)
}
