package session

import (
	"context"
	"fmt"
	"slices"

	"partytale/backend/internal/models"
)

// AdvanceResult is the outcome of AdvanceRound.
type AdvanceResult struct {
	Winner string
	State  models.RoundState
}

// StartGame writes round 0 for theme and starts the party's game. The
// provider call happens outside the party lock; if another request started
// the game meanwhile, the content is discarded and a ValidationError returned.
func (m *Manager) StartGame(ctx context.Context, code, theme string) (models.RoundState, error) {
	theme = models.NormalizeTheme(theme)
	err := m.withParty(code, func(p *party) error {
		if p.round.started {
			return invalid("game already started")
		}
		return nil
	})
	if err != nil {
		return models.RoundState{}, err
	}

	content := m.generate(ctx, RoundRequest{Round: 0, Theme: theme})
	if err := validateContent(content); err != nil {
		return models.RoundState{}, err
	}

	var state models.RoundState
	err = m.withParty(code, func(p *party) error {
		if p.round.started {
			return invalid("game already started")
		}
		p.round = roundState{
			started: true,
			theme:   theme,
			story:   content.Story,
			choices: slices.Clone(content.Choices),
			votes:   make(map[string]string),
		}
		p.lastActive = m.now()
		state = p.roundView()
		return nil
	})
	if err != nil {
		return models.RoundState{}, err
	}

	m.logger.Info("game started", "party", NormalizeCode(code), "theme", theme)
	return state, nil
}

// CurrentRound returns the party's 0-based round index.
func (m *Manager) CurrentRound(code string) (int, error) {
	var round int
	err := m.withParty(code, func(p *party) error {
		round = p.round.current
		return nil
	})
	return round, err
}

// NextRound records winner for the current round and installs content as the
// next one. It does not generate content.
func (m *Manager) NextRound(code, winner string, content models.RoundContent) (models.RoundState, error) {
	return m.transition(code, -1, winner, content)
}

// transition advances the round. A non-negative expected round must match
// the current one, so a transition computed against stale state is rejected.
func (m *Manager) transition(code string, expected int, winner string, content models.RoundContent) (models.RoundState, error) {
	if err := validateContent(content); err != nil {
		return models.RoundState{}, err
	}

	var state models.RoundState
	err := m.withParty(code, func(p *party) error {
		if err := checkInRound(p); err != nil {
			return err
		}
		if expected >= 0 && p.round.current != expected {
			return invalid("round %d already advanced", expected)
		}
		if !slices.Contains(choiceLabels(p.round.choices), winner) {
			return invalid("winning choice %q is not a choice of this round", winner)
		}

		p.round.history = append(p.round.history, models.RoundRecord{
			Round:   p.round.current,
			Story:   p.round.story,
			Choices: slices.Clone(p.round.choices),
			Winner:  winner,
		})
		p.round.lastWinner = winner
		p.round.current++
		p.round.story = content.Story
		p.round.choices = slices.Clone(content.Choices)
		p.round.votes = make(map[string]string)
		p.lastActive = m.now()
		state = p.roundView()
		return nil
	})
	return state, err
}

// AdvanceRound tallies the current round, writes the next one and moves the
// party forward. Concurrent calls for the same party and round share a single
// generation and transition.
func (m *Manager) AdvanceRound(ctx context.Context, code string) (AdvanceResult, error) {
	code = NormalizeCode(code)
	var (
		current int
		theme   string
		story   string
		choices []string
	)
	err := m.withParty(code, func(p *party) error {
		if err := checkInRound(p); err != nil {
			return err
		}
		current = p.round.current
		theme = p.round.theme
		story = p.round.story
		choices = slices.Clone(p.round.choices)
		return nil
	})
	if err != nil {
		return AdvanceResult{}, err
	}

	key := fmt.Sprintf("%s/%d", code, current)
	// Other callers may be waiting on this generation, so the first caller
	// going away must not cancel it.
	ctx = context.WithoutCancel(ctx)
	v, err, _ := m.flight.Do(key, func() (any, error) {
		winner, err := m.TallyVotes(code)
		if err != nil {
			return AdvanceResult{}, err
		}
		content := m.generate(ctx, RoundRequest{
			Round:          current + 1,
			Theme:          theme,
			PreviousLabel:  winner,
			PreviousChoice: choiceText(choices, winner),
			PreviousStory:  story,
		})
		state, err := m.transition(code, current, winner, content)
		if err != nil {
			return AdvanceResult{}, err
		}
		m.logger.Info("round advanced", "party", code, "round", state.CurrentRound, "winner", winner)
		if state.Finished() {
			m.archive(ctx, code)
		}
		return AdvanceResult{Winner: winner, State: state}, nil
	})
	if err != nil {
		return AdvanceResult{}, err
	}
	return v.(AdvanceResult), nil
}

func checkInRound(p *party) error {
	if !p.round.started {
		return invalid("game has not started")
	}
	if p.round.current >= models.MaxRounds {
		return invalid("game already finished")
	}
	return nil
}

func (m *Manager) generate(ctx context.Context, req RoundRequest) models.RoundContent {
	if m.contentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.contentTimeout)
		defer cancel()
	}
	return m.content.GenerateRound(ctx, req)
}

func (m *Manager) archive(ctx context.Context, code string) {
	if m.archiver == nil {
		return
	}
	game, err := m.GetParty(code)
	if err != nil {
		return
	}
	if err := m.archiver.ArchiveStory(context.WithoutCancel(ctx), game); err != nil {
		m.logger.Warn("story archive failed", "party", code, "error", err)
	}
}
