package bot

import "sync"

// step is where a chat currently is in a multi-message flow.
type step int

const (
	stepIdle step = iota
	// stepAmount waits for the operation amount as free text.
	stepAmount
	// stepComment waits for an optional comment.
	stepComment
	// stepRepayAmount waits for the repayment amount for session.debtID.
	stepRepayAmount
)

// session is the in-progress flow of one chat. It only holds UI state; the
// operation itself runs through the engine on confirmation.
type session struct {
	step     step
	kind     string
	entityID string
	targetID string
	amount   int64
	comment  string
	debtID   string
}

// sessionStore keeps per-chat sessions. Telegram delivers one update at a
// time per chat, but the polling loop may be made concurrent later, so access
// is guarded anyway.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

func (s *sessionStore) get(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &session{}
		s.sessions[chatID] = sess
	}
	return sess
}

func (s *sessionStore) reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
