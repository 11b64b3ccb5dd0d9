package session

import (
	"slices"
	"strings"
)

// Vote records playerID's choice for the current round, replacing any earlier
// vote, and returns the recomputed counts.
func (m *Manager) Vote(code, playerID, label string) (map[string]int, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	var counts map[string]int
	err := m.withParty(code, func(p *party) error {
		if _, pl := p.findPlayer(playerID); pl == nil {
			return notFound("player not found in party %s", p.code)
		}
		if err := checkInRound(p); err != nil {
			return err
		}
		labels := choiceLabels(p.round.choices)
		if !slices.Contains(labels, label) {
			return invalid("invalid choice %q, expected one of %s", label, strings.Join(labels, ", "))
		}
		p.round.votes[playerID] = label
		p.lastActive = m.now()
		counts = p.voteCounts()
		return nil
	})
	return counts, err
}

// TallyVotes returns the label with the most votes in the current round.
// Ties, including a round with no votes, go to the lowest label. Votes are
// left in place.
func (m *Manager) TallyVotes(code string) (string, error) {
	var winner string
	err := m.withParty(code, func(p *party) error {
		labels := choiceLabels(p.round.choices)
		if len(labels) == 0 {
			return invalid("game has not started")
		}
		winner = pickWinner(labels, p.voteCounts())
		return nil
	})
	return winner, err
}

// pickWinner expects labels sorted; the first label reaching the top count wins.
func pickWinner(labels []string, counts map[string]int) string {
	winner, best := labels[0], counts[labels[0]]
	for _, label := range labels[1:] {
		if counts[label] > best {
			winner, best = label, counts[label]
		}
	}
	return winner
}
