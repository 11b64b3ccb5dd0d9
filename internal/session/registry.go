package session

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"partytale/backend/internal/models"
)

// LeaveResult reports the outcome of LeaveParty.
type LeaveResult struct {
	PlayerName string
	Deleted    bool
	NewHost    string
}

// CreateParty opens a new party with hostName as its only player and host.
func (m *Manager) CreateParty(hostName string) (code, playerID string, err error) {
	if strings.TrimSpace(hostName) == "" {
		return "", "", invalid("player name is required")
	}

	now := m.now()
	playerID = uuid.NewString()
	p := m.store.insert(m.newCode, func(code string) *party {
		return &party{
			code: code,
			players: []*player{{
				id:       playerID,
				name:     hostName,
				isHost:   true,
				joinedAt: now,
			}},
			createdAt:  now,
			lastActive: now,
			round: roundState{
				votes: make(map[string]string),
			},
		}
	})

	m.logger.Info("party created", "party", p.code, "host", hostName)
	return p.code, playerID, nil
}

// JoinParty adds a non-host player to a party that has not started.
func (m *Manager) JoinParty(code, playerName string) (string, error) {
	if strings.TrimSpace(playerName) == "" {
		return "", invalid("player name is required")
	}

	playerID := uuid.NewString()
	err := m.withParty(code, func(p *party) error {
		if p.round.started {
			return invalid("game already started")
		}
		if p.hasName(playerName) {
			return invalid("player name %q already taken in this party", playerName)
		}
		now := m.now()
		p.players = append(p.players, &player{
			id:       playerID,
			name:     playerName,
			joinedAt: now,
		})
		p.lastActive = now
		return nil
	})
	if err != nil {
		return "", err
	}

	m.logger.Info("player joined", "party", NormalizeCode(code), "player", playerName)
	return playerID, nil
}

// GetParty returns a snapshot of the party. Polling clients call this, so it
// also counts as activity for idle reaping.
func (m *Manager) GetParty(code string) (models.Party, error) {
	var view models.Party
	err := m.withParty(code, func(p *party) error {
		p.lastActive = m.now()
		view = p.view()
		return nil
	})
	return view, err
}

// LeaveParty removes a player. The party is deleted when it becomes empty;
// otherwise a departing host hands over to the first remaining player.
func (m *Manager) LeaveParty(code, playerID string) (LeaveResult, error) {
	var res LeaveResult
	err := m.withParty(code, func(p *party) error {
		i, pl := p.findPlayer(playerID)
		if pl == nil {
			return notFound("player not found in party %s", p.code)
		}
		p.removePlayer(i)
		res.PlayerName = pl.name
		if len(p.players) == 0 {
			p.deleted = true
			m.store.remove(p.code, p)
			res.Deleted = true
			return nil
		}
		if pl.isHost {
			res.NewHost = p.players[0].name
		}
		p.lastActive = m.now()
		return nil
	})
	if err != nil {
		return res, err
	}

	code = NormalizeCode(code)
	m.logger.Info("player left", "party", code, "player", res.PlayerName)
	switch {
	case res.Deleted:
		m.logger.Info("party deleted", "party", code, "reason", "empty")
	case res.NewHost != "":
		m.logger.Info("host transferred", "party", code, "host", res.NewHost)
	}
	return res, nil
}

// PartyCount returns the number of live parties.
func (m *Manager) PartyCount() int {
	return m.store.Len()
}

// ListParties summarizes every live party, ordered by code.
func (m *Manager) ListParties() []models.PartySummary {
	var out []models.PartySummary
	for _, p := range m.store.all() {
		p.mu.Lock()
		if !p.deleted {
			names := make([]string, len(p.players))
			for i, pl := range p.players {
				names[i] = pl.name
			}
			out = append(out, models.PartySummary{
				Code:        p.code,
				PlayerCount: len(p.players),
				Players:     names,
			})
		}
		p.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b models.PartySummary) int {
		return strings.Compare(a.Code, b.Code)
	})
	return out
}
