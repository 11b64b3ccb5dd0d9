package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"partytale/backend/internal/models"
)

// ErrStoryNotFound is returned by Story for an unknown id.
var ErrStoryNotFound = errors.New("story not found")

// Archive stores finished games. It implements session.Archiver.
type Archive struct {
	db *gorm.DB
}

// NewArchive wraps an open connection.
func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

// ArchiveStory writes a finished game and its rounds in one transaction.
func (a *Archive) ArchiveStory(ctx context.Context, party models.Party) error {
	story := newStoryLog(party)
	return a.db.WithContext(ctx).Create(&story).Error
}

// Stories returns a reusable query over archived games, newest first,
// optionally filtered by theme.
func (a *Archive) Stories(ctx context.Context, theme string) *gorm.DB {
	query := a.db.WithContext(ctx).Model(&models.StoryLog{}).Order("id DESC")
	if theme != "" {
		query = query.Where("theme = ?", models.NormalizeTheme(theme))
	}
	return query.Session(&gorm.Session{})
}

// Story loads one archived game with its rounds in order.
func (a *Archive) Story(ctx context.Context, id uint) (models.StoryLog, error) {
	var story models.StoryLog
	err := a.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("round ASC") }).
		First(&story, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return story, ErrStoryNotFound
	}
	return story, err
}

func newStoryLog(party models.Party) models.StoryLog {
	state := party.GameState
	story := models.StoryLog{
		PartyCode:   party.Code,
		Theme:       state.Theme,
		Rounds:      state.CurrentRound,
		PlayerCount: len(party.Players),
		FinalStory:  state.CurrentStory,
	}
	for _, rec := range state.History {
		entry := models.StoryLogEntry{
			Round:  rec.Round,
			Story:  rec.Story,
			Winner: rec.Winner,
		}
		for i, choice := range rec.Choices {
			switch i {
			case 0:
				entry.ChoiceA = choice
			case 1:
				entry.ChoiceB = choice
			case 2:
				entry.ChoiceC = choice
			}
		}
		story.Entries = append(story.Entries, entry)
	}
	return story
}
