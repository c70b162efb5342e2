package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rupeecalc/rupee-calculator/internal/advisor"
	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

type chatRequest struct {
	Message   string          `json:"message"`
	SessionID string          `json:"sessionId"`
	Context   json.RawMessage `json:"context"`
}

type chatResponse struct {
	SessionID string        `json:"sessionId"`
	Response  domain.Advice `json:"response"`
	Success   bool          `json:"success"`
}

type historyResponse struct {
	SessionID string               `json:"sessionId"`
	Messages  []domain.ChatMessage `json:"messages"`
	Success   bool                 `json:"success"`
}

type saveCalculationRequest struct {
	SessionID      string          `json:"sessionId"`
	CalculatorType string          `json:"calculatorType"`
	Inputs         json.RawMessage `json:"inputs"`
	Results        json.RawMessage `json:"results"`
}

type saveCalculationResponse struct {
	Calculation domain.CalculationRecord `json:"calculation"`
	Success     bool                     `json:"success"`
}

type listCalculationsResponse struct {
	Calculations []domain.CalculationRecord `json:"calculations"`
	Success      bool                       `json:"success"`
}

type calculateResponse struct {
	CalculatorType domain.CalculatorType `json:"calculatorType"`
	Inputs         json.RawMessage       `json:"inputs"`
	Results        json.RawMessage       `json:"results"`
	Success        bool                  `json:"success"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		failWith(w, r, err, "Failed to process chat message")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	adviceReq := advisor.AdviceRequest{Question: req.Message}
	if len(req.Context) > 0 && string(req.Context) != "null" {
		var calc domain.CalculationContext
		if err := json.Unmarshal(req.Context, &calc); err != nil {
			failWith(w, r, fmt.Errorf("context: %w", err), "Failed to process chat message")
			return
		}
		adviceReq.Context = &calc
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newSessionID()
	}
	ctx := r.Context()
	if _, err := s.store.GetOrCreateSession(ctx, sessionID); err != nil {
		failWith(w, r, err, "Failed to process chat message")
		return
	}

	advice, err := s.advisor.Advise(ctx, adviceReq)
	if err != nil {
		loggerFrom(r).Error("advisor failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get financial advice. Please try again.")
		return
	}

	_, err = s.store.AppendMessages(ctx, sessionID,
		domain.ChatMessage{Type: domain.MessageUser, Content: req.Message},
		domain.ChatMessage{
			Type:        domain.MessageAI,
			Content:     advice.Advice,
			Suggestions: advice.Suggestions,
			ActionItems: advice.ActionItems,
		},
	)
	if err != nil {
		failWith(w, r, err, "Failed to process chat message")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{SessionID: sessionID, Response: advice, Success: true})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	session, err := s.store.GetSession(r.Context(), sessionID)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "Chat session not found")
			return
		}
		failWith(w, r, err, "Failed to get chat history")
		return
	}
	messages := session.Messages
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, historyResponse{SessionID: session.SessionID, Messages: messages, Success: true})
}

func (s *Server) handleSaveCalculation(w http.ResponseWriter, r *http.Request) {
	var req saveCalculationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		failWith(w, r, err, "Failed to save calculation")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	calc, err := domain.DecodeCalculation(req.CalculatorType, req.Inputs, req.Results)
	if err != nil {
		failWith(w, r, err, "Failed to save calculation")
		return
	}
	rec, err := domain.NewCalculationRecord(req.SessionID, domain.CalculationContext{Calculation: calc})
	if err != nil {
		failWith(w, r, err, "Failed to save calculation")
		return
	}
	saved, err := s.store.SaveCalculation(r.Context(), rec)
	if err != nil {
		failWith(w, r, err, "Failed to save calculation")
		return
	}
	writeJSON(w, http.StatusOK, saveCalculationResponse{Calculation: saved, Success: true})
}

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListCalculations(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		failWith(w, r, err, "Failed to get calculations")
		return
	}
	if records == nil {
		records = []domain.CalculationRecord{}
	}
	writeJSON(w, http.StatusOK, listCalculationsResponse{Calculations: records, Success: true})
}

// handleCalculate runs one calculator. The body is the calculator's input
// object.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var inputs json.RawMessage
	if err := decodeJSON(w, r, &inputs); err != nil {
		failWith(w, r, err, "Failed to run calculation")
		return
	}
	calc, err := domain.DecodeCalculation(chi.URLParam(r, "calculatorType"), inputs, nil)
	if err != nil {
		failWith(w, r, err, "Failed to run calculation")
		return
	}
	out, err := s.engine.Run(r.Context(), domain.CalculationContext{Calculation: calc})
	if err != nil {
		failWith(w, r, err, "Failed to run calculation")
		return
	}
	in, err := out.InputsJSON()
	if err != nil {
		failWith(w, r, err, "Failed to run calculation")
		return
	}
	res, err := out.ResultsJSON()
	if err != nil {
		failWith(w, r, err, "Failed to run calculation")
		return
	}
	writeJSON(w, http.StatusOK, calculateResponse{CalculatorType: out.Type(), Inputs: in, Results: res, Success: true})
}
