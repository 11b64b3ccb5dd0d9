package models

import "time"

// MaxRounds is the number of rounds in a game. A round state whose
// CurrentRound has reached MaxRounds is finished.
const MaxRounds = 5

// Player is a member of a party as seen by clients.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsHost   bool      `json:"isHost"`
	JoinedAt time.Time `json:"joinedAt"`
}

// RoundRecord is a completed round kept for the ending screen.
type RoundRecord struct {
	Round   int      `json:"round"`
	Story   string   `json:"story"`
	Choices []string `json:"choices"`
	Winner  string   `json:"winner"`
}

// RoundState is a snapshot of a party's game.
type RoundState struct {
	Started        bool              `json:"started"`
	Theme          string            `json:"theme"`
	CurrentRound   int               `json:"currentRound"`
	CurrentStory   string            `json:"currentStory"`
	CurrentChoices []string          `json:"currentChoices"`
	Votes          map[string]string `json:"votes"`
	VoteCounts     map[string]int    `json:"voteCounts"`
	LastWinner     string            `json:"lastWinner,omitempty"`
	History        []RoundRecord     `json:"history"`
}

// Finished reports whether the game has played all of its rounds.
func (s RoundState) Finished() bool {
	return s.Started && s.CurrentRound >= MaxRounds
}

// Party is a read-only snapshot of a party. It never aliases registry state.
type Party struct {
	Code      string     `json:"partyCode"`
	Players   []Player   `json:"players"`
	GameState RoundState `json:"gameState"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PartySummary is the debug listing entry for a party.
type PartySummary struct {
	Code        string   `json:"code"`
	PlayerCount int      `json:"playerCount"`
	Players     []string `json:"players"`
}

// RoundContent is the story text and choices for one round.
type RoundContent struct {
	Story   string   `json:"story"`
	Choices []string `json:"choices"`
}
