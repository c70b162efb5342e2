// Package storage persists chat sessions and saved calculations.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

// Store is the persistence collaborator used by the HTTP layer. Lookups of an
// unknown session return an error wrapping domain.ErrNotFound.
type Store interface {
	// GetOrCreateSession returns the session, creating an empty one if needed.
	GetOrCreateSession(ctx context.Context, sessionID string) (domain.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (domain.ChatSession, error)
	// AppendMessages assigns ids (and timestamps when zero) to msgs, appends
	// them in order and returns the updated session.
	AppendMessages(ctx context.Context, sessionID string, msgs ...domain.ChatMessage) (domain.ChatSession, error)
	SaveCalculation(ctx context.Context, rec domain.CalculationRecord) (domain.CalculationRecord, error)
	// ListCalculations returns the session's records in insertion order.
	ListCalculations(ctx context.Context, sessionID string) ([]domain.CalculationRecord, error)
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open returns the store for driver. path is only used by sqlite.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch strings.ToLower(driver) {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// Clock returns the current time; stores take one so tests can pin it.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	return nil
}

func validateRecord(rec domain.CalculationRecord) error {
	if err := validateSessionID(rec.SessionID); err != nil {
		return err
	}
	if _, err := domain.ParseCalculatorType(string(rec.CalculatorType)); err != nil {
		return err
	}
	if len(rec.Inputs) == 0 {
		return fmt.Errorf("%w: calculation inputs are required", domain.ErrInvalidInput)
	}
	return nil
}

func validateMessage(m domain.ChatMessage) error {
	switch m.Type {
	case domain.MessageUser, domain.MessageAI:
		return nil
	default:
		return fmt.Errorf("%w: unknown message type %q", domain.ErrInvalidInput, m.Type)
	}
}

func notFound(sessionID string) error {
	return fmt.Errorf("chat session %q: %w", sessionID, domain.ErrNotFound)
}
