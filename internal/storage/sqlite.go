package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rupeecalc/rupee-calculator/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	type TEXT NOT NULL,
	content TEXT NOT NULL,
	suggestions TEXT NOT NULL DEFAULT '[]',
	action_items TEXT NOT NULL DEFAULT '[]',
	timestamp TEXT NOT NULL,
	FOREIGN KEY(session_id) REFERENCES chat_sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id);

CREATE TABLE IF NOT EXISTS calculations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	calculator_type TEXT NOT NULL,
	inputs TEXT NOT NULL,
	results TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_session ON calculations(session_id);
`

const timeLayout = time.RFC3339Nano

// SQLiteStore is the durable Store backed by modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	now Clock
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	// one connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteStore{db: db, now: utcNow}, nil
}

// SetClock replaces the timestamp source.
func (s *SQLiteStore) SetClock(now Clock) { s.now = now }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) GetOrCreateSession(ctx context.Context, sessionID string) (domain.ChatSession, error) {
	if err := validateSessionID(sessionID); err != nil {
		return domain.ChatSession{}, err
	}
	now := s.now().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO chat_sessions (session_id, created_at, updated_at) VALUES (?, ?, ?)`,
		sessionID, now, now)
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("create chat session: %w", err)
	}
	return s.GetSession(ctx, sessionID)
}

func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (domain.ChatSession, error) {
	return s.loadSession(ctx, s.db, sessionID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *SQLiteStore) loadSession(ctx context.Context, q querier, sessionID string) (domain.ChatSession, error) {
	var (
		sess             domain.ChatSession
		created, updated string
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, session_id, created_at, updated_at FROM chat_sessions WHERE session_id = ?`, sessionID).
		Scan(&sess.ID, &sess.SessionID, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ChatSession{}, notFound(sessionID)
	}
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("load chat session: %w", err)
	}
	if sess.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return domain.ChatSession{}, fmt.Errorf("chat session created_at: %w", err)
	}
	if sess.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return domain.ChatSession{}, fmt.Errorf("chat session updated_at: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, type, content, suggestions, action_items, timestamp FROM chat_messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("load chat messages: %w", err)
	}
	defer rows.Close()

	sess.Messages = []domain.ChatMessage{}
	for rows.Next() {
		var (
			m               domain.ChatMessage
			sugg, items, ts string
		)
		if err := rows.Scan(&m.ID, &m.Type, &m.Content, &sugg, &items, &ts); err != nil {
			return domain.ChatSession{}, fmt.Errorf("scan chat message: %w", err)
		}
		if m.Suggestions, err = decodeList(sugg); err != nil {
			return domain.ChatSession{}, fmt.Errorf("message %d suggestions: %w", m.ID, err)
		}
		if m.ActionItems, err = decodeList(items); err != nil {
			return domain.ChatSession{}, fmt.Errorf("message %d action items: %w", m.ID, err)
		}
		if m.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			return domain.ChatSession{}, fmt.Errorf("message %d timestamp: %w", m.ID, err)
		}
		sess.Messages = append(sess.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return domain.ChatSession{}, fmt.Errorf("load chat messages: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) AppendMessages(ctx context.Context, sessionID string, msgs ...domain.ChatMessage) (domain.ChatSession, error) {
	for _, m := range msgs {
		if err := validateMessage(m); err != nil {
			return domain.ChatSession{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	res, err := tx.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = ? WHERE session_id = ?`, now.Format(timeLayout), sessionID)
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("touch chat session: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.ChatSession{}, fmt.Errorf("touch chat session: %w", err)
	} else if n == 0 {
		return domain.ChatSession{}, notFound(sessionID)
	}

	for _, m := range msgs {
		ts := m.Timestamp
		if ts.IsZero() {
			ts = now
		}
		sugg, err := encodeList(m.Suggestions)
		if err != nil {
			return domain.ChatSession{}, err
		}
		items, err := encodeList(m.ActionItems)
		if err != nil {
			return domain.ChatSession{}, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chat_messages (session_id, type, content, suggestions, action_items, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, string(m.Type), m.Content, sugg, items, ts.UTC().Format(timeLayout))
		if err != nil {
			return domain.ChatSession{}, fmt.Errorf("insert chat message: %w", err)
		}
	}

	sess, err := s.loadSession(ctx, tx, sessionID)
	if err != nil {
		return domain.ChatSession{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.ChatSession{}, fmt.Errorf("commit chat messages: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) (domain.CalculationRecord, error) {
	if err := validateRecord(rec); err != nil {
		return domain.CalculationRecord{}, err
	}
	if len(rec.Results) == 0 {
		rec.Results = json.RawMessage("null")
	}
	rec.CreatedAt = s.now()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO calculations (session_id, calculator_type, inputs, results, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.SessionID, string(rec.CalculatorType), string(rec.Inputs), string(rec.Results), rec.CreatedAt.Format(timeLayout))
	if err != nil {
		return domain.CalculationRecord{}, fmt.Errorf("insert calculation: %w", err)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return domain.CalculationRecord{}, fmt.Errorf("insert calculation: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) ListCalculations(ctx context.Context, sessionID string) ([]domain.CalculationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, calculator_type, inputs, results, created_at FROM calculations WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	out := []domain.CalculationRecord{}
	for rows.Next() {
		var (
			rec                   domain.CalculationRecord
			calcType, in, res, ts string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &calcType, &in, &res, &ts); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		rec.CalculatorType = domain.CalculatorType(calcType)
		rec.Inputs = json.RawMessage(in)
		rec.Results = json.RawMessage(res)
		if rec.CreatedAt, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("calculation %d created_at: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func encodeList(items []string) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
