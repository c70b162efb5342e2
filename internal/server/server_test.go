package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rupeecalc/rupee-calculator/internal/advisor"
	"github.com/rupeecalc/rupee-calculator/internal/domain"
	"github.com/rupeecalc/rupee-calculator/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeAdvisor struct {
	advice domain.Advice
	err    error
	last   advisor.AdviceRequest
	calls  int
}

func (f *fakeAdvisor) Advise(_ context.Context, req advisor.AdviceRequest) (domain.Advice, error) {
	f.calls++
	f.last = req
	return f.advice, f.err
}

type testEnv struct {
	srv     *Server
	store   *storage.MemoryStore
	advisor *fakeAdvisor
}

func newTestEnv(t *testing.T, mutate ...func(*Options)) *testEnv {
	t.Helper()
	store := storage.NewMemoryStoreWithClock(func() time.Time { return fixedNow })
	adv := &fakeAdvisor{advice: domain.Advice{
		Advice:      "Keep investing.",
		Suggestions: []string{"Step up your SIP"},
		ActionItems: []string{"Review yearly"},
	}}
	opts := Options{
		Store:          store,
		Advisor:        adv,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins: []string{"http://localhost:3000"},
		NewSessionID:   func() string { return "session_test" },
	}
	for _, m := range mutate {
		m(&opts)
	}
	srv := New(opts)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: store, advisor: adv}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestChatCreatesSession(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodPost, "/api/chat", `{"message":"How much should I save?"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "session_test", body["sessionId"])
	assert.Equal(t, true, body["success"])
	resp := body["response"].(map[string]any)
	assert.Equal(t, "Keep investing.", resp["advice"])
	assert.Equal(t, []any{"Step up your SIP"}, resp["suggestions"])
	assert.Equal(t, []any{"Review yearly"}, resp["actionItems"])

	session, err := env.store.GetSession(context.Background(), "session_test")
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, domain.MessageUser, session.Messages[0].Type)
	assert.Equal(t, "How much should I save?", session.Messages[0].Content)
	assert.Equal(t, domain.MessageAI, session.Messages[1].Type)
	assert.Equal(t, "Keep investing.", session.Messages[1].Content)
	assert.Equal(t, []string{"Step up your SIP"}, session.Messages[1].Suggestions)
	assert.Equal(t, fixedNow, session.Messages[1].Timestamp)
}

func TestChatAppendsToExistingSession(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 2; i++ {
		rec, body := env.do(t, http.MethodPost, "/api/chat", `{"message":"hello","sessionId":"session_abc"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "session_abc", body["sessionId"])
	}
	rec, body := env.do(t, http.MethodGet, "/api/chat/session_abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session_abc", body["sessionId"])
	assert.Equal(t, true, body["success"])
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 4)
	ids := make([]float64, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.(map[string]any)["id"].(float64))
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, ids)
}

func TestChatPassesCalculationContext(t *testing.T) {
	env := newTestEnv(t)
	body := `{"message":"Is this enough?","context":{"calculatorType":"sip","inputs":{"monthlyAmount":5000,"rate":12,"years":10}}}`
	rec, _ := env.do(t, http.MethodPost, "/api/chat", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.True(t, env.advisor.last.HasContext())
	assert.Equal(t, domain.CalculatorSIP, env.advisor.last.Context.Type())
	assert.Equal(t, "Is this enough?", env.advisor.last.Question)
}

func TestChatRejectsInvalidBodies(t *testing.T) {
	cases := map[string]string{
		"empty message":   `{"message":""}`,
		"blank message":   `{"message":"   "}`,
		"missing message": `{"sessionId":"s"}`,
		"malformed json":  `{"message":`,
		"no body":         ``,
		"unknown context": `{"message":"hi","context":{"calculatorType":"lottery","inputs":{}}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			rec, out := env.do(t, http.MethodPost, "/api/chat", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, out["success"])
			assert.NotEmpty(t, out["error"])
			assert.Zero(t, env.advisor.calls)
		})
	}
}

func TestChatAdvisorFailure(t *testing.T) {
	env := newTestEnv(t)
	env.advisor.err = errors.New("upstream down")
	rec, body := env.do(t, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to get financial advice. Please try again.", body["error"])

	session, err := env.store.GetSession(context.Background(), "session_test")
	require.NoError(t, err)
	assert.Empty(t, session.Messages)
}

func TestChatHistoryNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodGet, "/api/chat/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Chat session not found", body["error"])
	assert.Equal(t, false, body["success"])
}

func TestSaveAndListCalculations(t *testing.T) {
	env := newTestEnv(t)
	save := `{"sessionId":"s1","calculatorType":"home-loan",` +
		`"inputs":{"amount":5000000,"rate":8.5,"tenure":20},` +
		`"results":{"monthlyEMI":43391.16,"totalAmount":10413878,"totalInterest":5413878,"totalMonths":240,"yearlyBreakdown":[]}}`
	rec, body := env.do(t, http.MethodPost, "/api/calculations", save)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	calc := body["calculation"].(map[string]any)
	assert.EqualValues(t, 1, calc["id"])
	assert.Equal(t, "home-loan", calc["calculatorType"])
	assert.Equal(t, "s1", calc["sessionId"])

	rec, _ = env.do(t, http.MethodPost, "/api/calculations",
		`{"sessionId":"s1","calculatorType":"sip","inputs":{"monthlyAmount":1000,"rate":12,"years":5}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, body = env.do(t, http.MethodGet, "/api/calculations/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["calculations"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "home-loan", list[0].(map[string]any)["calculatorType"])
	assert.Equal(t, "sip", list[1].(map[string]any)["calculatorType"])
	assert.Nil(t, list[1].(map[string]any)["results"])

	rec, body = env.do(t, http.MethodGet, "/api/calculations/other", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["calculations"])
}

func TestSaveCalculationRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing session": `{"calculatorType":"sip","inputs":{"monthlyAmount":1}}`,
		"unknown type":    `{"sessionId":"s","calculatorType":"crypto","inputs":{}}`,
		"missing inputs":  `{"sessionId":"s","calculatorType":"sip"}`,
		"bad inputs":      `{"sessionId":"s","calculatorType":"sip","inputs":{"rate":"lots"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			rec, out := env.do(t, http.MethodPost, "/api/calculations", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, false, out["success"])
		})
	}
}

func TestCalculate(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodPost, "/api/calculate/home-loan", `{"amount":5000000,"rate":8.5,"tenure":20}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "home-loan", body["calculatorType"])
	assert.Equal(t, true, body["success"])
	results := body["results"].(map[string]any)
	assert.InDelta(t, 43391.16, results["monthlyEMI"].(float64), 0.01)
	assert.Len(t, results["yearlyBreakdown"].([]any), 20)

	rec, body = env.do(t, http.MethodPost, "/api/calculate/compound", `{"principal":100000,"rate":10,"years":2,"frequency":"yearly"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "compound-interest", body["calculatorType"])
	assert.InDelta(t, 121000, body["results"].(map[string]any)["total"].(float64), 0.01)
}

func TestCalculateRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodPost, "/api/calculate/sip", `{"monthlyAmount":-1,"rate":12,"years":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "monthlyAmount")

	rec, _ = env.do(t, http.MethodPost, "/api/calculate/lottery", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wild := newTestEnv(t, func(o *Options) { o.AllowedOrigins = []string{"*"} })
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rec = httptest.NewRecorder()
	wild.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitedRoutes(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.RateLimitRPS = 0.001
		o.RateLimitBurst = 2
	})
	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/calculations/s1", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		env.srv.Handler().ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "health checks are not rate limited")
}

func TestRateLimitIgnoresForwardedHeadersByDefault(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.RateLimitRPS = 0.001
		o.RateLimitBurst = 1
	})
	var codes []int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/calculations/s1", nil)
		req.RemoteAddr = "203.0.113.9:4444"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		rec := httptest.NewRecorder()
		env.srv.Handler().ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
	assert.Equal(t, 1, env.srv.limiter.Len())
}

func TestRateLimitTrustsProxyHeadersWhenEnabled(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.RateLimitRPS = 0.001
		o.RateLimitBurst = 1
		o.TrustProxyHeaders = true
	})
	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/calculations/s1", nil)
		req.RemoteAddr = "10.0.0.1:4444"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		env.srv.Handler().ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	assert.Equal(t, 2, env.srv.limiter.Len())
}

func TestRecoverer(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.Advisor = advisor.ClientFunc(func(context.Context, advisor.AdviceRequest) (domain.Advice, error) {
			panic("boom")
		})
	})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"hi"}`))
	rec := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
