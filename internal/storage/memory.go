package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// MemoryStore keeps everything in process memory. Surrogate ids start at 1
// and increase monotonically per table. Values are copied in and out so
// callers never share state with the store.
type MemoryStore struct {
	mu           sync.RWMutex
	now          Clock
	sessions     map[string]*domain.ChatSession
	calculations []domain.CalculationRecord

	nextSessionID     int64
	nextMessageID     int64
	nextCalculationID int64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(utcNow)
}

// NewMemoryStoreWithClock creates an empty store using now for timestamps.
func NewMemoryStoreWithClock(now Clock) *MemoryStore {
	return &MemoryStore{
		now:               now,
		sessions:          make(map[string]*domain.ChatSession),
		nextSessionID:     1,
		nextMessageID:     1,
		nextCalculationID: 1,
	}
}

func (s *MemoryStore) GetOrCreateSession(_ context.Context, sessionID string) (domain.ChatSession, error) {
	if err := validateSessionID(sessionID); err != nil {
		return domain.ChatSession{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		return copySession(sess), nil
	}
	now := s.now()
	sess := &domain.ChatSession{
		ID:        s.nextSessionID,
		SessionID: sessionID,
		Messages:  []domain.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextSessionID++
	s.sessions[sessionID] = sess
	return copySession(sess), nil
}

func (s *MemoryStore) GetSession(_ context.Context, sessionID string) (domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ChatSession{}, notFound(sessionID)
	}
	return copySession(sess), nil
}

func (s *MemoryStore) AppendMessages(_ context.Context, sessionID string, msgs ...domain.ChatMessage) (domain.ChatSession, error) {
	for _, m := range msgs {
		if err := validateMessage(m); err != nil {
			return domain.ChatSession{}, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ChatSession{}, notFound(sessionID)
	}
	now := s.now()
	for _, m := range msgs {
		m = copyMessage(m)
		m.ID = s.nextMessageID
		s.nextMessageID++
		if m.Timestamp.IsZero() {
			m.Timestamp = now
		}
		sess.Messages = append(sess.Messages, m)
	}
	sess.UpdatedAt = now
	return copySession(sess), nil
}

func (s *MemoryStore) SaveCalculation(_ context.Context, rec domain.CalculationRecord) (domain.CalculationRecord, error) {
	if err := validateRecord(rec); err != nil {
		return domain.CalculationRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec = copyRecord(rec)
	rec.ID = s.nextCalculationID
	s.nextCalculationID++
	rec.CreatedAt = s.now()
	if len(rec.Results) == 0 {
		rec.Results = json.RawMessage("null")
	}
	s.calculations = append(s.calculations, rec)
	return copyRecord(rec), nil
}

func (s *MemoryStore) ListCalculations(_ context.Context, sessionID string) ([]domain.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.CalculationRecord{}
	for _, rec := range s.calculations {
		if rec.SessionID == sessionID {
			out = append(out, copyRecord(rec))
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func copySession(s *domain.ChatSession) domain.ChatSession {
	out := *s
	out.Messages = make([]domain.ChatMessage, len(s.Messages))
	for i, m := range s.Messages {
		out.Messages[i] = copyMessage(m)
	}
	return out
}

func copyMessage(m domain.ChatMessage) domain.ChatMessage {
	if m.Suggestions != nil {
		m.Suggestions = append([]string(nil), m.Suggestions...)
	}
	if m.ActionItems != nil {
		m.ActionItems = append([]string(nil), m.ActionItems...)
	}
	return m
}

func copyRecord(r domain.CalculationRecord) domain.CalculationRecord {
	r.Inputs = append(json.RawMessage(nil), r.Inputs...)
	if r.Results != nil {
		r.Results = append(json.RawMessage(nil), r.Results...)
	}
	return r
}
