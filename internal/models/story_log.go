package models

import "gorm.io/gorm"

// StoryLog is an archived, finished game.
type StoryLog struct {
	gorm.Model
	PartyCode   string `gorm:"size:6;not null;index"`
	Theme       string `gorm:"size:50;not null"`
	Rounds      int    `gorm:"not null"`
	PlayerCount int    `gorm:"not null"`
	FinalStory  string

	Entries []StoryLogEntry `gorm:"foreignKey:StoryLogID;constraint:OnDelete:CASCADE;"`
}

// StoryLogEntry is one round of an archived game.
type StoryLogEntry struct {
	gorm.Model
	StoryLogID uint   `gorm:"not null;index"`
	Round      int    `gorm:"not null"`
	Story      string `gorm:"not null"`
	ChoiceA    string `gorm:"size:255"`
	ChoiceB    string `gorm:"size:255"`
	ChoiceC    string `gorm:"size:255"`
	Winner     string `gorm:"size:1"`
}
