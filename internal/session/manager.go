// Package session holds the in-memory party registry, the round state
// machine and the vote tally. Every operation on a party runs under that
// party's lock; no lock is held while content is being generated.
package session

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/singleflight"

	"partytale/backend/internal/models"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RoundRequest describes the round a ContentProvider is asked to write.
type RoundRequest struct {
	Round          int
	Theme          string
	PreviousLabel  string
	PreviousChoice string
	PreviousStory  string
}

// ContentProvider writes the story and choices for a round. It must always
// return usable content; failures are its own to absorb.
type ContentProvider interface {
	GenerateRound(ctx context.Context, req RoundRequest) models.RoundContent
}

// Archiver records finished games.
type Archiver interface {
	ArchiveStory(ctx context.Context, game models.Party) error
}

// Manager is the session core consumed by the request layer.
type Manager struct {
	store          *Store
	content        ContentProvider
	archiver       Archiver
	logger         *slog.Logger
	contentTimeout time.Duration
	now            func() time.Time
	newCode        func() string
	flight         singleflight.Group
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithArchiver records every game that reaches its final round.
func WithArchiver(a Archiver) Option {
	return func(m *Manager) { m.archiver = a }
}

// WithContentTimeout bounds each content generation call.
func WithContentTimeout(d time.Duration) Option {
	return func(m *Manager) { m.contentTimeout = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithCodeGenerator replaces the random party code source.
func WithCodeGenerator(next func() string) Option {
	return func(m *Manager) { m.newCode = next }
}

// NewManager builds a Manager over store using content for round text.
func NewManager(store *Store, content ContentProvider, opts ...Option) *Manager {
	m := &Manager{
		store:          store,
		content:        content,
		logger:         slog.Default(),
		contentTimeout: 5 * time.Second,
		now:            time.Now,
		newCode:        RandomCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RandomCode returns a random party code of uppercase letters and digits.
func RandomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}

// withParty runs fn with the party for code locked.
func (m *Manager) withParty(code string, fn func(p *party) error) error {
	p, ok := m.store.lookup(code)
	if !ok {
		return notFound("party %s not found", NormalizeCode(code))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleted {
		return notFound("party %s not found", NormalizeCode(code))
	}
	return fn(p)
}
