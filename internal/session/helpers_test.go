package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"partytale/backend/internal/models"
)

// stubContent writes predictable rounds and can hold a call open.
type stubContent struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
	choices []string
}

func (s *stubContent) GenerateRound(ctx context.Context, req RoundRequest) models.RoundContent {
	s.calls.Add(1)
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	choices := s.choices
	if choices == nil {
		choices = []string{"A) Go left", "B) Go right", "C) Stay put"}
	}
	return models.RoundContent{
		Story:   fmt.Sprintf("Round %d of the %s tale after %q.", req.Round, req.Theme, req.PreviousLabel),
		Choices: choices,
	}
}

type recordingArchiver struct {
	mu    sync.Mutex
	games []models.Party
	err   error
}

func (a *recordingArchiver) ArchiveStory(_ context.Context, game models.Party) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.games = append(a.games, game)
	return a.err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, content ContentProvider, opts ...Option) *Manager {
	t.Helper()
	if content == nil {
		content = &stubContent{}
	}
	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	return NewManager(NewStore(), content, opts...)
}

// fixedCodes hands out codes in order, then falls back to random ones.
func fixedCodes(codes ...string) func() string {
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		if len(codes) == 0 {
			return RandomCode()
		}
		code := codes[0]
		codes = codes[1:]
		return code
	}
}

func mustCreate(t *testing.T, m *Manager, host string) (string, string) {
	t.Helper()
	code, id, err := m.CreateParty(host)
	if err != nil {
		t.Fatalf("CreateParty(%q) failed: %v", host, err)
	}
	return code, id
}

func mustJoin(t *testing.T, m *Manager, code, name string) string {
	t.Helper()
	id, err := m.JoinParty(code, name)
	if err != nil {
		t.Fatalf("JoinParty(%q) failed: %v", name, err)
	}
	return id
}

func mustStart(t *testing.T, m *Manager, code string) models.RoundState {
	t.Helper()
	state, err := m.StartGame(context.Background(), code, "")
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	return state
}
