package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType distinguishes the two sides of a chat transcript.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageAI   MessageType = "ai"
)

// ChatMessage is one entry of a chat transcript. Suggestions and action items
// are only set on advisor replies.
type ChatMessage struct {
	ID          int64       `json:"id"`
	Type        MessageType `json:"type"`
	Content     string      `json:"content"`
	Suggestions []string    `json:"suggestions,omitempty"`
	ActionItems []string    `json:"actionItems,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// ChatSession is a transcript keyed by an opaque session id. ID is the
// storage surrogate key.
type ChatSession struct {
	ID        int64         `json:"id"`
	SessionID string        `json:"sessionId"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Advice is the advisory collaborator's structured reply.
type Advice struct {
	Advice      string   `json:"advice"`
	Suggestions []string `json:"suggestions"`
	ActionItems []string `json:"actionItems"`
}

// CalculationRecord is a saved calculation. Inputs and Results hold the
// canonical JSON encoding of the typed calculation.
type CalculationRecord struct {
	ID             int64           `json:"id"`
	SessionID      string          `json:"sessionId"`
	CalculatorType CalculatorType  `json:"calculatorType"`
	Inputs         json.RawMessage `json:"inputs"`
	Results        json.RawMessage `json:"results"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewCalculationRecord encodes a calculation context for storage.
func NewCalculationRecord(sessionID string, calc CalculationContext) (CalculationRecord, error) {
	if sessionID == "" {
		return CalculationRecord{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	in, err := calc.InputsJSON()
	if err != nil {
		return CalculationRecord{}, err
	}
	out, err := calc.ResultsJSON()
	if err != nil {
		return CalculationRecord{}, err
	}
	if out == nil {
		out = json.RawMessage("null")
	}
	return CalculationRecord{
		SessionID:      sessionID,
		CalculatorType: calc.Type(),
		Inputs:         in,
		Results:        out,
	}, nil
}

// Context decodes the record back into its typed calculation.
func (r CalculationRecord) Context() (CalculationContext, error) {
	calc, err := DecodeCalculation(string(r.CalculatorType), r.Inputs, r.Results)
	if err != nil {
		return CalculationContext{}, err
	}
	return CalculationContext{Calculation: calc}, nil
}
