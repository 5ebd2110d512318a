package domain

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Fixed user-facing texts of the assistant.
const (
	GreetingText = "Ciao! 👋 Sono qui per aiutarti a scoprire l'ISIS G.D. Romagnosi. Di cosa vuoi parlare?"
	ResetText    = "Chat resettata! 👋 \nCome posso aiutarti ora?"
	ErrorText    = "Scusa, ho avuto un piccolo problema tecnico. Riprova tra un attimo! 😓"
)

// Message is one entry of the conversation transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	IsError   bool      `json:"is_error,omitempty"`

	// inProgress marks the single placeholder message being extended
	// while a model reply streams in. It is cleared when the stream
	// completes and the message receives its permanent ID.
	inProgress bool
}

// InProgress reports whether the message is the streaming placeholder.
func (m *Message) InProgress() bool {
	return m.inProgress
}

// Attachment is a document pending to be sent alongside the next message.
type Attachment struct {
	Name      string
	MediaType string
	Data      []byte
}

// Transcript is the ordered, append-only list of messages of one session.
// The only permitted mutation besides appending is extending the streaming
// placeholder, via AppendOrExtendLastModelMessage.
type Transcript struct {
	messages []Message
}

// NewTranscript returns a transcript seeded with a single model greeting.
func NewTranscript(greetingID, greeting string) *Transcript {
	t := &Transcript{}
	t.Append(Message{
		ID:        greetingID,
		Role:      RoleModel,
		Text:      greeting,
		CreatedAt: time.Now(),
	})
	return t
}

// Append adds a message at the end of the transcript.
func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// AppendOrExtendLastModelMessage applies one streamed fragment. When the
// last entry is the in-progress placeholder its text is replaced with the
// concatenation so far; otherwise a new placeholder is appended seeded with
// the fragment. The transcript therefore never holds more than one
// placeholder and its visible text grows monotonically.
func (t *Transcript) AppendOrExtendLastModelMessage(fragment string) {
	if n := len(t.messages); n > 0 {
		last := &t.messages[n-1]
		if last.Role == RoleModel && last.inProgress {
			last.Text += fragment
			return
		}
	}
	t.Append(Message{
		Role:       RoleModel,
		Text:       fragment,
		CreatedAt:  time.Now(),
		inProgress: true,
	})
}

// FinalizeLastModelMessage promotes the streaming placeholder, if any, to a
// permanent message with the given ID so it becomes addressable (e.g. for
// audio playback) and cannot be confused with a future placeholder. It
// returns the finalized message, or nil when no placeholder exists.
func (t *Transcript) FinalizeLastModelMessage(id string) *Message {
	n := len(t.messages)
	if n == 0 {
		return nil
	}
	last := &t.messages[n-1]
	if last.Role != RoleModel || !last.inProgress {
		return nil
	}
	last.ID = id
	last.inProgress = false
	return last
}

// Messages returns a copy of the transcript entries in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recent message, or nil for an empty transcript.
func (t *Transcript) Last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return &t.messages[len(t.messages)-1]
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}
