package service

import (
	"context"
	"os"
	"sync"
	"testing"

	"orientabot/internal/config"
	"orientabot/internal/domain"
	"orientabot/internal/logger"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	os.Exit(m.Run())
}

// --- Fakes ---

// fakeSession is a scripted ModelSession: it records what was sent and
// replays a fixed fragment sequence. When block is set, SendStream signals
// started after the first fragment and waits on block before streaming the
// rest, so tests can interleave calls mid-stream.
type fakeSession struct {
	fragments []string
	err       error

	block     chan struct{}
	started   chan struct{}
	startOnce sync.Once

	mu         sync.Mutex
	sentText   string
	attachment *domain.Attachment
}

func (s *fakeSession) SendStream(ctx context.Context, text string, attachment *domain.Attachment, onFragment func(string) error) error {
	s.mu.Lock()
	s.sentText = text
	s.attachment = attachment
	s.mu.Unlock()

	for i, f := range s.fragments {
		if err := onFragment(f); err != nil {
			return err
		}
		if i == 0 && s.block != nil {
			if s.started != nil {
				s.startOnce.Do(func() { close(s.started) })
			}
			<-s.block
		}
	}
	return s.err
}

func (s *fakeSession) sent() (string, *domain.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentText, s.attachment
}

// fakeModel hands out its sessions in order, repeating the last one.
type fakeModel struct {
	sessions []*fakeSession
	err      error

	mu   sync.Mutex
	next int
}

func (m *fakeModel) NewSession(ctx context.Context) (domain.ModelSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[m.next]
	if m.next < len(m.sessions)-1 {
		m.next++
	}
	return s, nil
}

// fakeAudio records calls so chat tests can assert on auto-play and reset
// behavior without real synthesis.
type fakeAudio struct {
	mu       sync.Mutex
	played   []string
	resets   int
	playText map[string]string
}

func (a *fakeAudio) Play(ctx context.Context, messageID, text string) (*domain.Clip, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.played = append(a.played, messageID)
	if a.playText == nil {
		a.playText = make(map[string]string)
	}
	a.playText[messageID] = text
	return domain.NewClip(nil, 24000), nil
}

func (a *fakeAudio) Stop() {}

func (a *fakeAudio) PlayingID() string { return "" }

func (a *fakeAudio) IsLoading(messageID string) bool { return false }

func (a *fakeAudio) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resets++
}

func (a *fakeAudio) playedIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.played))
	copy(out, a.played)
	return out
}

func (a *fakeAudio) resetCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resets
}

// fakeSynthesizer returns a fixed PCM payload and counts invocations.
type fakeSynthesizer struct {
	pcm []byte
	err error

	mu    sync.Mutex
	calls int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.pcm, nil
}

func (f *fakeSynthesizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeGenerator scripts the remote video operation lifecycle: Start returns
// startOp, each Poll consumes the next entry of pollOps, Download returns
// video.
type fakeGenerator struct {
	startOp  *domain.VideoOperation
	startErr error
	pollOps  []*domain.VideoOperation
	pollErr  error
	video    []byte
	dlErr    error

	mu    sync.Mutex
	polls int
}

func (g *fakeGenerator) Start(ctx context.Context, req domain.VideoRequest) (*domain.VideoOperation, error) {
	if g.startErr != nil {
		return nil, g.startErr
	}
	return g.startOp, nil
}

func (g *fakeGenerator) Poll(ctx context.Context, op *domain.VideoOperation) (*domain.VideoOperation, error) {
	g.mu.Lock()
	n := g.polls
	g.polls++
	g.mu.Unlock()

	if g.pollErr != nil {
		return nil, g.pollErr
	}
	if n < len(g.pollOps) {
		return g.pollOps[n], nil
	}
	// Keep reporting the last scripted state.
	if len(g.pollOps) > 0 {
		return g.pollOps[len(g.pollOps)-1], nil
	}
	return op, nil
}

func (g *fakeGenerator) Download(ctx context.Context, op *domain.VideoOperation) ([]byte, error) {
	if g.dlErr != nil {
		return nil, g.dlErr
	}
	return g.video, nil
}

func (g *fakeGenerator) pollCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.polls
}
