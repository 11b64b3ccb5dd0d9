package session

import (
	"slices"
	"strings"

	"partytale/backend/internal/models"
)

// ChoicesPerRound is the number of choices every round must offer.
const ChoicesPerRound = 3

// choiceLabel returns the single-letter label of a choice written as "A) text".
func choiceLabel(choice string) (string, bool) {
	choice = strings.TrimSpace(choice)
	if len(choice) < 2 || choice[1] != ')' {
		return "", false
	}
	c := choice[0]
	if c < 'A' || c > 'Z' {
		return "", false
	}
	return string(c), true
}

// choiceLabels returns the labels of choices in label order. Unlabelled
// choices are skipped.
func choiceLabels(choices []string) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		if label, ok := choiceLabel(choice); ok {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)
	return labels
}

// choiceText returns the choice carrying label, or "" if none does.
func choiceText(choices []string, label string) string {
	for _, choice := range choices {
		if l, ok := choiceLabel(choice); ok && l == label {
			return choice
		}
	}
	return ""
}

// validateContent rejects round content unless it carries exactly
// ChoicesPerRound non-empty choices labelled A), B), C) in that order.
func validateContent(content models.RoundContent) error {
	if strings.TrimSpace(content.Story) == "" {
		return invalid("round story is empty")
	}
	if len(content.Choices) != ChoicesPerRound {
		return invalid("round must have %d choices, got %d", ChoicesPerRound, len(content.Choices))
	}
	for i, choice := range content.Choices {
		label, ok := choiceLabel(choice)
		if !ok {
			return invalid("choice %q has no label", choice)
		}
		if want := string(rune('A' + i)); label != want {
			return invalid("choice %d must be labelled %s, got %s", i+1, want, label)
		}
		if strings.TrimSpace(strings.TrimSpace(choice)[2:]) == "" {
			return invalid("choice %s is empty", label)
		}
	}
	return nil
}
