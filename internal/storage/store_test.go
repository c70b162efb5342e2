package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rupeecalc/rupee-calculator/internal/calculation"
	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// storeFactories builds each Store variant with a pinned clock.
var storeFactories = map[string]func(t *testing.T) Store{
	"memory": func(t *testing.T) Store { return NewMemoryStoreWithClock(fixedClock) },
	"sqlite": func(t *testing.T) Store {
		s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "calc.db"))
		require.NoError(t, err)
		s.SetClock(fixedClock)
		t.Cleanup(func() { s.Close() })
		return s
	},
}

func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) { fn(t, factory(t)) })
	}
}

func sipRecord(t *testing.T, sessionID string) domain.CalculationRecord {
	t.Helper()
	in := domain.SIPInput{MonthlyAmount: decimal.NewFromInt(10000), Rate: decimal.NewFromInt(12), Years: decimal.NewFromInt(15)}
	res := calculation.SIP(in)
	rec, err := domain.NewCalculationRecord(sessionID, domain.CalculationContext{
		Calculation: &domain.SIPCalculation{Inputs: in, Results: &res},
	})
	require.NoError(t, err)
	return rec
}

func TestGetOrCreateSession(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		first, err := s.GetOrCreateSession(ctx, "session_a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, "session_a", first.SessionID)
		assert.Empty(t, first.Messages)
		assert.True(t, first.CreatedAt.Equal(fixedNow))

		again, err := s.GetOrCreateSession(ctx, "session_a")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)

		other, err := s.GetOrCreateSession(ctx, "session_b")
		require.NoError(t, err)
		assert.Greater(t, other.ID, first.ID)

		_, err = s.GetOrCreateSession(ctx, "  ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetSessionNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.GetSession(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = s.AppendMessages(context.Background(), "missing", domain.ChatMessage{Type: domain.MessageUser, Content: "hi"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAppendMessages(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.GetOrCreateSession(ctx, "chat")
		require.NoError(t, err)

		asked := fixedNow.Add(-time.Minute)
		sess, err := s.AppendMessages(ctx, "chat",
			domain.ChatMessage{Type: domain.MessageUser, Content: "Should I prepay my home loan?", Timestamp: asked},
			domain.ChatMessage{Type: domain.MessageAI, Content: "Compare the loan rate with your expected return.",
				Suggestions: []string{"Keep an emergency fund"}, ActionItems: []string{"Check prepayment charges"}},
		)
		require.NoError(t, err)
		require.Len(t, sess.Messages, 2)
		assert.Equal(t, int64(1), sess.Messages[0].ID)
		assert.Equal(t, int64(2), sess.Messages[1].ID)
		assert.True(t, sess.Messages[0].Timestamp.Equal(asked))
		assert.True(t, sess.Messages[1].Timestamp.Equal(fixedNow))
		assert.Nil(t, sess.Messages[0].Suggestions)
		assert.Equal(t, []string{"Keep an emergency fund"}, sess.Messages[1].Suggestions)
		assert.Equal(t, []string{"Check prepayment charges"}, sess.Messages[1].ActionItems)

		sess, err = s.AppendMessages(ctx, "chat", domain.ChatMessage{Type: domain.MessageUser, Content: "Thanks"})
		require.NoError(t, err)
		require.Len(t, sess.Messages, 3)
		assert.Equal(t, int64(3), sess.Messages[2].ID)

		loaded, err := s.GetSession(ctx, "chat")
		require.NoError(t, err)
		assert.Equal(t, sess.Messages, loaded.Messages)

		_, err = s.AppendMessages(ctx, "chat", domain.ChatMessage{Type: "bot", Content: "?"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSaveAndListCalculations(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		first, err := s.SaveCalculation(ctx, sipRecord(t, "s1"))
		require.NoError(t, err)
		second, err := s.SaveCalculation(ctx, sipRecord(t, "s2"))
		require.NoError(t, err)
		third, err := s.SaveCalculation(ctx, sipRecord(t, "s1"))
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
		assert.Equal(t, int64(3), third.ID)
		assert.True(t, first.CreatedAt.Equal(fixedNow))

		list, err := s.ListCalculations(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, []int64{1, 3}, []int64{list[0].ID, list[1].ID})
		assert.JSONEq(t, string(first.Inputs), string(list[0].Inputs))
		assert.JSONEq(t, string(first.Results), string(list[0].Results))

		calc, err := list[0].Context()
		require.NoError(t, err)
		sip := calc.Calculation.(*domain.SIPCalculation)
		require.NotNil(t, sip.Results)
		assert.True(t, sip.Results.TotalInvestment.Equal(decimal.NewFromInt(1800000)))

		empty, err := s.ListCalculations(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}

func TestSaveCalculationValidation(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		good := sipRecord(t, "s")

		bad := good
		bad.SessionID = ""
		_, err := s.SaveCalculation(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		bad = good
		bad.CalculatorType = "lumpsum"
		_, err = s.SaveCalculation(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		bad = good
		bad.Inputs = nil
		_, err = s.SaveCalculation(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		pending := good
		pending.Results = nil
		saved, err := s.SaveCalculation(ctx, pending)
		require.NoError(t, err)
		assert.Equal(t, json.RawMessage("null"), saved.Results)
	})
}

func TestConcurrentAppends(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.GetOrCreateSession(ctx, "busy")
		require.NoError(t, err)

		const writers = 8
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.AppendMessages(ctx, "busy", domain.ChatMessage{Type: domain.MessageUser, Content: fmt.Sprintf("msg %d", i)})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		sess, err := s.GetSession(ctx, "busy")
		require.NoError(t, err)
		require.Len(t, sess.Messages, writers)
		for i := 1; i < len(sess.Messages); i++ {
			assert.Greater(t, sess.Messages[i].ID, sess.Messages[i-1].ID)
		}
	})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, err := s.GetOrCreateSession(ctx, "c")
	require.NoError(t, err)
	sess, err := s.AppendMessages(ctx, "c", domain.ChatMessage{Type: domain.MessageAI, Content: "a", Suggestions: []string{"x"}})
	require.NoError(t, err)

	sess.Messages[0].Suggestions[0] = "mutated"
	sess.Messages[0].Content = "mutated"

	again, err := s.GetSession(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Messages[0].Content)
	assert.Equal(t, "x", again.Messages[0].Suggestions[0])
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, "postgres", "")
	assert.Error(t, err)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "durable.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = s.GetOrCreateSession(ctx, "keep")
	require.NoError(t, err)
	_, err = s.AppendMessages(ctx, "keep", domain.ChatMessage{Type: domain.MessageUser, Content: "remember me"})
	require.NoError(t, err)
	_, err = s.SaveCalculation(ctx, sipRecord(t, "keep"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	sess, err := s.GetSession(ctx, "keep")
	require.NoError(t, err)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, "remember me", sess.Messages[0].Content)

	list, err := s.ListCalculations(ctx, "keep")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
