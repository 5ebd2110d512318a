package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"orientabot/internal/config"
	"orientabot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePCMSecond is a second of 16-bit mono audio at 24 kHz: long enough
// that the end-of-clip timer cannot fire during a test assertion.
var onePCMSecond = make([]byte, 48000)

func newAudioForTest(synth domain.SpeechSynthesizer) AudioService {
	return NewAudioService(synth, config.AudioConfig{SampleRate: 24000})
}

func TestPlaySynthesizesOnceAndCaches(t *testing.T) {
	synth := &fakeSynthesizer{pcm: onePCMSecond}
	svc := newAudioForTest(synth)

	clip, err := svc.Play(context.Background(), "msg-1", "Ciao a tutti")
	require.NoError(t, err)
	require.NotNil(t, clip)
	assert.Equal(t, "msg-1", svc.PlayingID())
	assert.Equal(t, 1, synth.callCount())

	svc.Stop()
	assert.Equal(t, "", svc.PlayingID())

	// Replaying the same message hits the cache.
	clip, err = svc.Play(context.Background(), "msg-1", "Ciao a tutti")
	require.NoError(t, err)
	require.NotNil(t, clip)
	assert.Equal(t, 1, synth.callCount())
}

func TestPlayTogglesCurrentMessage(t *testing.T) {
	synth := &fakeSynthesizer{pcm: onePCMSecond}
	svc := newAudioForTest(synth)

	_, err := svc.Play(context.Background(), "msg-1", "testo")
	require.NoError(t, err)
	require.Equal(t, "msg-1", svc.PlayingID())

	clip, err := svc.Play(context.Background(), "msg-1", "testo")
	require.NoError(t, err)
	assert.Nil(t, clip)
	assert.Equal(t, "", svc.PlayingID())
}

func TestPlayReplacesCurrentMessage(t *testing.T) {
	synth := &fakeSynthesizer{pcm: onePCMSecond}
	svc := newAudioForTest(synth)

	_, err := svc.Play(context.Background(), "msg-1", "primo")
	require.NoError(t, err)

	_, err = svc.Play(context.Background(), "msg-2", "secondo")
	require.NoError(t, err)
	assert.Equal(t, "msg-2", svc.PlayingID())
	assert.Equal(t, 2, synth.callCount())
}

func TestPlayStopsAtEndOfClip(t *testing.T) {
	// 48 bytes at 24 kHz is a 1 ms clip.
	synth := &fakeSynthesizer{pcm: make([]byte, 48)}
	svc := newAudioForTest(synth)

	_, err := svc.Play(context.Background(), "msg-1", "breve")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return svc.PlayingID() == ""
	}, time.Second, 5*time.Millisecond)
}

func TestPlayFailureLeavesNothingPlaying(t *testing.T) {
	synth := &fakeSynthesizer{err: errors.New("quota exceeded")}
	svc := newAudioForTest(synth)

	clip, err := svc.Play(context.Background(), "msg-1", "testo")
	assert.Nil(t, clip)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSpeechService, domainErr.Code)

	assert.Equal(t, "", svc.PlayingID())
	assert.False(t, svc.IsLoading("msg-1"))
}

func TestResetDropsCache(t *testing.T) {
	synth := &fakeSynthesizer{pcm: onePCMSecond}
	svc := newAudioForTest(synth)

	_, err := svc.Play(context.Background(), "msg-1", "testo")
	require.NoError(t, err)

	svc.Reset()
	assert.Equal(t, "", svc.PlayingID())

	_, err = svc.Play(context.Background(), "msg-1", "testo")
	require.NoError(t, err)
	assert.Equal(t, 2, synth.callCount())
}
