package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"partytale/backend/internal/models"
)

func finishedParty() models.Party {
	state := models.RoundState{
		Started:        true,
		Theme:          models.ThemeMystery,
		CurrentRound:   models.MaxRounds,
		CurrentStory:   "The last piece falls into place.",
		CurrentChoices: []string{"A) One", "B) Two", "C) Three"},
	}
	for i := 0; i < models.MaxRounds; i++ {
		state.History = append(state.History, models.RoundRecord{
			Round:   i,
			Story:   "Scene.",
			Choices: []string{"A) Open", "B) Follow", "C) Wait"},
			Winner:  "B",
		})
	}
	return models.Party{
		Code: "AB12CD",
		Players: []models.Player{
			{ID: "1", Name: "Ava", IsHost: true, JoinedAt: time.Now()},
			{ID: "2", Name: "Ben", JoinedAt: time.Now()},
		},
		GameState: state,
	}
}

func TestNewStoryLog(t *testing.T) {
	story := newStoryLog(finishedParty())

	if story.PartyCode != "AB12CD" || story.Theme != models.ThemeMystery {
		t.Errorf("Unexpected header %+v", story)
	}
	if story.Rounds != models.MaxRounds || story.PlayerCount != 2 {
		t.Errorf("Expected %d rounds and 2 players, got %d and %d", models.MaxRounds, story.Rounds, story.PlayerCount)
	}
	if story.FinalStory != "The last piece falls into place." {
		t.Errorf("Unexpected final story %q", story.FinalStory)
	}
	if len(story.Entries) != models.MaxRounds {
		t.Fatalf("Expected %d entries, got %d", models.MaxRounds, len(story.Entries))
	}
	e := story.Entries[0]
	if e.ChoiceA != "A) Open" || e.ChoiceB != "B) Follow" || e.ChoiceC != "C) Wait" || e.Winner != "B" {
		t.Errorf("Unexpected entry %+v", e)
	}
}

// TestArchiveRoundTrip needs a disposable Postgres database, for example
// TEST_DATABASE_URL="host=localhost user=postgres dbname=partytale_test sslmode=disable".
func TestArchiveRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	archive := NewArchive(db)
	ctx := context.Background()

	if err := archive.ArchiveStory(ctx, finishedParty()); err != nil {
		t.Fatalf("ArchiveStory failed: %v", err)
	}

	var latest models.StoryLog
	if err := archive.Stories(ctx, "mystery").First(&latest).Error; err != nil {
		t.Fatalf("Stories query failed: %v", err)
	}
	got, err := archive.Story(ctx, latest.ID)
	if err != nil {
		t.Fatalf("Story failed: %v", err)
	}
	if len(got.Entries) != models.MaxRounds || got.Entries[0].Round != 0 {
		t.Errorf("Expected ordered entries, got %+v", got.Entries)
	}

	if _, err := archive.Story(ctx, 1<<31); !errors.Is(err, ErrStoryNotFound) {
		t.Errorf("Expected ErrStoryNotFound, got %v", err)
	}
}
