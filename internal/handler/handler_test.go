package handler

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
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"partytale/backend/internal/models"
	"partytale/backend/internal/session"
	"partytale/backend/internal/story"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedContent struct{}

func (fixedContent) GenerateRound(_ context.Context, req session.RoundRequest) models.RoundContent {
	return models.RoundContent{
		Story:   fmt.Sprintf("Scene %d of the %s tale.", req.Round, req.Theme),
		Choices: []string{"A) Go left", "B) Go right", "C) Wait"},
	}
}

type fakeImages struct {
	mu     sync.Mutex
	result story.ImageResult
	got    []story.ImageRequest
}

func (f *fakeImages) GenerateImage(_ context.Context, req story.ImageRequest) story.ImageResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, req)
	return f.result
}

type testServer struct {
	router   *gin.Engine
	sessions *session.Manager
}

func newTestServer(t *testing.T, images ImageGenerator, debug bool) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(session.NewStore(), fixedContent{}, session.WithLogger(logger))
	h := New(sessions, Options{Images: images, Logger: logger})

	router := gin.New()
	h.Register(router, debug)
	return &testServer{router: router, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func (s *testServer) create(t *testing.T, name string) MembershipResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/party/create", gin.H{"playerName": name})
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return decode[MembershipResponse](t, w)
}

func (s *testServer) join(t *testing.T, code, name string) MembershipResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/party/join", gin.H{"partyCode": code, "playerName": name})
	if w.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return decode[MembershipResponse](t, w)
}

func (s *testServer) start(t *testing.T, code string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/game/start", gin.H{"partyCode": code})
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPartyAndGameFlow(t *testing.T) {
	s := newTestServer(t, nil, false)

	ava := s.create(t, "Ava")
	if !ava.Success || !ava.IsHost || len(ava.PartyCode) != 6 || ava.PlayerID == "" {
		t.Fatalf("Unexpected create response %+v", ava)
	}
	ben := s.join(t, strings.ToLower(ava.PartyCode), "Ben")
	if ben.IsHost || ben.PartyCode != ava.PartyCode {
		t.Errorf("Unexpected join response %+v", ben)
	}

	w := s.do(t, http.MethodPost, "/api/game/start", gin.H{"partyCode": ava.PartyCode, "theme": "mystery"})
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	started := decode[GameStateResponse](t, w)
	if !started.GameState.Started || started.GameState.Theme != "mystery" || len(started.GameState.CurrentChoices) != 3 {
		t.Errorf("Unexpected game state %+v", started.GameState)
	}

	s.do(t, http.MethodPost, "/api/game/vote", gin.H{"partyCode": ava.PartyCode, "playerId": ava.PlayerID, "choice": "A"})
	w = s.do(t, http.MethodPost, "/api/game/vote", gin.H{"partyCode": ava.PartyCode, "playerId": ben.PlayerID, "choice": "b"})
	if w.Code != http.StatusOK {
		t.Fatalf("vote: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	votes := decode[VoteResponse](t, w)
	if votes.VoteCounts["A"] != 1 || votes.VoteCounts["B"] != 1 || votes.VoteCounts["C"] != 0 {
		t.Errorf("Expected {A:1 B:1 C:0}, got %v", votes.VoteCounts)
	}

	w = s.do(t, http.MethodPost, "/api/game/next", gin.H{"partyCode": ava.PartyCode})
	if w.Code != http.StatusOK {
		t.Fatalf("next: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	next := decode[NextRoundResponse](t, w)
	if next.Winner != "A" || next.Finished || next.GameState.CurrentRound != 1 {
		t.Errorf("Unexpected next response %+v", next)
	}
	if len(next.GameState.Votes) != 0 {
		t.Errorf("Expected votes cleared, got %v", next.GameState.Votes)
	}

	w = s.do(t, http.MethodGet, "/api/party/"+ava.PartyCode, nil)
	party := decode[PartyResponse](t, w)
	if !party.Success || len(party.Players) != 2 || party.GameState.CurrentStory != "Scene 1 of the mystery tale." {
		t.Errorf("Unexpected party %+v", party)
	}

	w = s.do(t, http.MethodPost, "/api/party/leave", gin.H{"partyCode": ava.PartyCode, "playerId": ava.PlayerID})
	left := decode[LeaveResponse](t, w)
	if left.PlayerName != "Ava" || left.Deleted || left.NewHost != "Ben" {
		t.Errorf("Unexpected leave response %+v", left)
	}
	w = s.do(t, http.MethodPost, "/api/party/leave", gin.H{"partyCode": ava.PartyCode, "playerId": ben.PlayerID})
	if left = decode[LeaveResponse](t, w); !left.Deleted {
		t.Errorf("Expected party deleted, got %+v", left)
	}

	if w = s.do(t, http.MethodGet, "/api/party/"+ava.PartyCode, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after deletion, got %d", w.Code)
	}
}

func TestGameFinishesAfterFinalRound(t *testing.T) {
	s := newTestServer(t, nil, false)
	host := s.create(t, "Ava")
	s.start(t, host.PartyCode)

	var last NextRoundResponse
	for i := 1; i <= models.MaxRounds; i++ {
		w := s.do(t, http.MethodPost, "/api/game/next", gin.H{"partyCode": host.PartyCode})
		if w.Code != http.StatusOK {
			t.Fatalf("next %d: expected 200, got %d", i, w.Code)
		}
		last = decode[NextRoundResponse](t, w)
	}
	if !last.Finished || last.GameState.CurrentRound != models.MaxRounds {
		t.Errorf("Expected finished game, got %+v", last)
	}
	if len(last.GameState.History) != models.MaxRounds {
		t.Errorf("Expected %d history records, got %d", models.MaxRounds, len(last.GameState.History))
	}

	w := s.do(t, http.MethodPost, "/api/game/next", gin.H{"partyCode": host.PartyCode})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 past the final round, got %d", w.Code)
	}
	w = s.do(t, http.MethodPost, "/api/game/vote", gin.H{"partyCode": host.PartyCode, "playerId": host.PlayerID, "choice": "A"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a vote on a finished game, got %d", w.Code)
	}
}

func TestErrorStatuses(t *testing.T) {
	s := newTestServer(t, nil, false)
	host := s.create(t, "Ava")
	idle := s.create(t, "Cai")
	s.start(t, host.PartyCode)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"create without body", http.MethodPost, "/api/party/create", nil, http.StatusBadRequest},
		{"create malformed JSON", http.MethodPost, "/api/party/create", `{"playerName":`, http.StatusBadRequest},
		{"create blank name", http.MethodPost, "/api/party/create", gin.H{"playerName": "   "}, http.StatusBadRequest},
		{"join unknown party", http.MethodPost, "/api/party/join", gin.H{"partyCode": "ZZZZZZ", "playerName": "Ben"}, http.StatusNotFound},
		{"join started game", http.MethodPost, "/api/party/join", gin.H{"partyCode": host.PartyCode, "playerName": "Ben"}, http.StatusBadRequest},
		{"join duplicate name", http.MethodPost, "/api/party/join", gin.H{"partyCode": idle.PartyCode, "playerName": "Cai"}, http.StatusBadRequest},
		{"join missing name", http.MethodPost, "/api/party/join", gin.H{"partyCode": idle.PartyCode}, http.StatusBadRequest},
		{"get unknown party", http.MethodGet, "/api/party/ZZZZZZ", nil, http.StatusNotFound},
		{"leave unknown player", http.MethodPost, "/api/party/leave", gin.H{"partyCode": host.PartyCode, "playerId": "ghost"}, http.StatusNotFound},
		{"start twice", http.MethodPost, "/api/game/start", gin.H{"partyCode": host.PartyCode}, http.StatusBadRequest},
		{"start unknown party", http.MethodPost, "/api/game/start", gin.H{"partyCode": "ZZZZZZ"}, http.StatusNotFound},
		{"vote unknown player", http.MethodPost, "/api/game/vote", gin.H{"partyCode": host.PartyCode, "playerId": "ghost", "choice": "A"}, http.StatusNotFound},
		{"vote bad label", http.MethodPost, "/api/game/vote", gin.H{"partyCode": host.PartyCode, "playerId": host.PlayerID, "choice": "D"}, http.StatusBadRequest},
		{"vote before start", http.MethodPost, "/api/game/vote", gin.H{"partyCode": idle.PartyCode, "playerId": idle.PlayerID, "choice": "A"}, http.StatusBadRequest},
		{"next before start", http.MethodPost, "/api/game/next", gin.H{"partyCode": idle.PartyCode}, http.StatusBadRequest},
		{"next unknown party", http.MethodPost, "/api/game/next", gin.H{"partyCode": "ZZZZZZ"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
			if resp := decode[ErrorResponse](t, w); resp.Error == "" {
				t.Errorf("Expected error message, got %s", w.Body.String())
			}
		})
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	h := New(nil, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.respondError(c, errors.New("connection reset by peer"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Errorf("Internal error text leaked: %s", w.Body.String())
	}
}

func TestGenerateImage(t *testing.T) {
	images := &fakeImages{result: story.ImageResult{DataURL: "data:image/png;base64,QUJD"}}
	s := newTestServer(t, images, false)
	host := s.create(t, "Ava")
	s.start(t, host.PartyCode)

	w := s.do(t, http.MethodPost, "/api/game/image", gin.H{"partyCode": host.PartyCode, "choice": "b"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[ImageResponse](t, w)
	if resp.ImageDataURL == nil || *resp.ImageDataURL != "data:image/png;base64,QUJD" || resp.Error != nil {
		t.Errorf("Unexpected image response %s", w.Body.String())
	}
	if len(images.got) != 1 {
		t.Fatalf("Expected one image request, got %d", len(images.got))
	}
	got := images.got[0]
	if got.Choice != "B) Go right" || got.Theme != models.DefaultTheme || got.Story != "Scene 0 of the scifi tale." {
		t.Errorf("Unexpected image request %+v", got)
	}
}

func TestGenerateImageDegradesSilently(t *testing.T) {
	images := &fakeImages{result: story.ImageResult{Err: story.ErrNoCredentials}}
	s := newTestServer(t, images, false)
	host := s.create(t, "Ava")

	w := s.do(t, http.MethodPost, "/api/game/image", gin.H{"partyCode": host.PartyCode, "choice": "A"})
	if w.Code != http.StatusOK || w.Body.String() != `{"imageDataUrl":null,"error":null}` {
		t.Errorf("Expected null image before start, got %d %s", w.Code, w.Body.String())
	}
	if len(images.got) != 0 {
		t.Errorf("Expected no image request before start, got %d", len(images.got))
	}

	s.start(t, host.PartyCode)
	w = s.do(t, http.MethodPost, "/api/game/image", gin.H{"partyCode": host.PartyCode, "choice": "A"})
	if w.Code != http.StatusOK || w.Body.String() != `{"imageDataUrl":null,"error":null}` {
		t.Errorf("Expected null image without credentials, got %d %s", w.Code, w.Body.String())
	}

	if w = s.do(t, http.MethodPost, "/api/game/image", gin.H{"partyCode": "ZZZZZZ"}); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown party, got %d", w.Code)
	}
}

func TestResolveChoice(t *testing.T) {
	choices := []string{"A) Go left", "B) Go right", "C) Wait"}
	tests := []struct {
		in, want string
	}{
		{"A", "A) Go left"},
		{" c ", "C) Wait"},
		{"B) Go right", "B) Go right"},
		{"D", "D"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resolveChoice(choices, tt.in); got != tt.want {
			t.Errorf("resolveChoice(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, false)
	s.create(t, "Ava")
	s.create(t, "Ben")

	w := s.do(t, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := decode[HealthResponse](t, w)
	if resp.Status != "ok" || resp.ActiveParties != 2 || resp.Timestamp.IsZero() {
		t.Errorf("Unexpected health response %+v", resp)
	}
}

func TestDebugParties(t *testing.T) {
	hidden := newTestServer(t, nil, false)
	if w := hidden.do(t, http.MethodGet, "/api/debug/parties", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 when disabled, got %d", w.Code)
	}

	s := newTestServer(t, nil, true)
	w := s.do(t, http.MethodGet, "/api/debug/parties", nil)
	if w.Body.String() != `{"parties":[]}` {
		t.Errorf("Expected empty list, got %s", w.Body.String())
	}

	host := s.create(t, "Ava")
	s.join(t, host.PartyCode, "Ben")
	resp := decode[DebugPartiesResponse](t, s.do(t, http.MethodGet, "/api/debug/parties", nil))
	if len(resp.Parties) != 1 || resp.Parties[0].PlayerCount != 2 || resp.Parties[0].Code != host.PartyCode {
		t.Errorf("Unexpected debug listing %+v", resp)
	}
}

func TestStoriesDisabledWithoutArchive(t *testing.T) {
	s := newTestServer(t, nil, false)
	for _, path := range []string{"/api/stories", "/api/stories/1"} {
		w := s.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "disabled") {
			t.Errorf("%s: expected disabled 404, got %d %s", path, w.Code, w.Body.String())
		}
	}
}

func TestPageQuery(t *testing.T) {
	tests := []struct {
		query string
		want  PageQuery
	}{
		{"", PageQuery{Page: 1, Limit: defaultPageSize}},
		{"?page=3&limit=20", PageQuery{Page: 3, Limit: 20}},
		{"?page=0&limit=-1", PageQuery{Page: 1, Limit: defaultPageSize}},
		{"?page=abc&limit=1000", PageQuery{Page: 1, Limit: maxPageSize}},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/stories"+tt.query, nil)

		if got := pageQuery(c); got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.query, tt.want, got)
		}
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		q         PageQuery
		wantPages int
	}{
		{"partial last page", 21, PageQuery{Page: 2, Limit: 10}, 3},
		{"exact pages", 20, PageQuery{Page: 1, Limit: 10}, 2},
		{"empty", 0, PageQuery{Page: 1, Limit: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPaginatedResponse[StoryResponse](nil, tt.total, tt.q)
			if resp.Meta.TotalPages != tt.wantPages {
				t.Errorf("Expected %d pages, got %d", tt.wantPages, resp.Meta.TotalPages)
			}
			if resp.Meta.CurrentPage != tt.q.Page || resp.Meta.PageSize != tt.q.Limit {
				t.Errorf("Unexpected meta %+v", resp.Meta)
			}
			if resp.Data == nil {
				t.Error("Expected empty data slice, got nil")
			}
		})
	}
}
