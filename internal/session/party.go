package session

import (
	"maps"
	"slices"
	"sync"
	"time"

	"partytale/backend/internal/models"
)

type player struct {
	id       string
	name     string
	isHost   bool
	joinedAt time.Time
}

type roundState struct {
	started    bool
	theme      string
	current    int
	story      string
	choices    []string
	votes      map[string]string
	lastWinner string
	history    []models.RoundRecord
}

// party is the mutable record behind a code. Every field is guarded by mu.
type party struct {
	mu         sync.Mutex
	code       string
	players    []*player
	createdAt  time.Time
	lastActive time.Time
	round      roundState
	deleted    bool
}

func (p *party) findPlayer(id string) (int, *player) {
	for i, pl := range p.players {
		if pl.id == id {
			return i, pl
		}
	}
	return -1, nil
}

func (p *party) hasName(name string) bool {
	for _, pl := range p.players {
		if pl.name == name {
			return true
		}
	}
	return false
}

// removePlayer drops the player at i and moves host to the new first player
// when the host left.
func (p *party) removePlayer(i int) *player {
	gone := p.players[i]
	p.players = slices.Delete(p.players, i, i+1)
	delete(p.round.votes, gone.id)
	if gone.isHost && len(p.players) > 0 {
		p.players[0].isHost = true
	}
	return gone
}

// voteCounts derives per-label counts from the votes map. Every label of the
// current choices is present, even with zero votes.
func (p *party) voteCounts() map[string]int {
	counts := make(map[string]int, len(p.round.choices))
	for _, label := range choiceLabels(p.round.choices) {
		counts[label] = 0
	}
	for _, label := range p.round.votes {
		if _, ok := counts[label]; ok {
			counts[label]++
		}
	}
	return counts
}

func (p *party) roundView() models.RoundState {
	history := make([]models.RoundRecord, len(p.round.history))
	for i, rec := range p.round.history {
		rec.Choices = slices.Clone(rec.Choices)
		history[i] = rec
	}
	choices := slices.Clone(p.round.choices)
	if choices == nil {
		choices = []string{}
	}
	return models.RoundState{
		Started:        p.round.started,
		Theme:          p.round.theme,
		CurrentRound:   p.round.current,
		CurrentStory:   p.round.story,
		CurrentChoices: choices,
		Votes:          maps.Clone(p.round.votes),
		VoteCounts:     p.voteCounts(),
		LastWinner:     p.round.lastWinner,
		History:        history,
	}
}

func (p *party) view() models.Party {
	players := make([]models.Player, len(p.players))
	for i, pl := range p.players {
		players[i] = models.Player{
			ID:       pl.id,
			Name:     pl.name,
			IsHost:   pl.isHost,
			JoinedAt: pl.joinedAt,
		}
	}
	return models.Party{
		Code:      p.code,
		Players:   players,
		GameState: p.roundView(),
		CreatedAt: p.createdAt,
	}
}
