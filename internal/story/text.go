package story

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"partytale/backend/internal/models"
)

// DefaultWordLimit caps the length of a round's story.
const DefaultWordLimit = 30

const choicesPerRound = 3

var (
	errMalformedReply = errors.New("malformed model reply")
	labelPrefix       = regexp.MustCompile(`^[A-Za-z]\)\s*`)
	codeFence         = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// EnforceWordLimit trims story to at most limit words, preferring to end on
// a sentence boundary.
func EnforceWordLimit(story string, limit int) string {
	story = strings.TrimSpace(story)
	if limit <= 0 {
		return story
	}
	words := strings.Fields(story)
	if len(words) <= limit {
		return story
	}
	trimmed := strings.Join(words[:limit], " ")
	if stop := strings.LastIndexAny(trimmed, ".!?"); stop > 20 {
		return trimmed[:stop+1]
	}
	return strings.TrimRight(trimmed, ".,;:!?") + "."
}

// EnsureChoiceLeadIn prefixes story with a short sentence naming the chosen
// action, unless the first sentence already mentions it.
func EnsureChoiceLeadIn(story, previousChoice string) string {
	story = strings.TrimSpace(story)
	choice := strings.TrimRight(StripLabel(previousChoice), ".!? ")
	if choice == "" {
		return story
	}
	if strings.Contains(strings.ToLower(firstSentence(story)), strings.ToLower(choice)) {
		return story
	}
	lead := "They chose to " + lowerFirst(choice) + "."
	if story == "" {
		return lead
	}
	return lead + " " + story
}

// StripLabel removes a leading "X)" label from a choice.
func StripLabel(choice string) string {
	return strings.TrimSpace(labelPrefix.ReplaceAllString(strings.TrimSpace(choice), ""))
}

// parseRoundReply extracts story and choices from a model reply. The reply
// is expected to hold a JSON object, possibly wrapped in a code fence or
// surrounded by prose.
func parseRoundReply(reply string) (models.RoundContent, error) {
	text := strings.TrimSpace(reply)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return models.RoundContent{}, fmt.Errorf("%w: no JSON object", errMalformedReply)
	}
	object := text[start : end+1]
	if !gjson.Valid(object) {
		return models.RoundContent{}, fmt.Errorf("%w: invalid JSON", errMalformedReply)
	}

	story := strings.TrimSpace(gjson.Get(object, "story").String())
	if story == "" {
		return models.RoundContent{}, fmt.Errorf("%w: missing story", errMalformedReply)
	}

	var choices []string
	for _, c := range gjson.Get(object, "choices").Array() {
		if c.Type == gjson.String {
			choices = append(choices, c.String())
		}
	}
	if len(choices) < choicesPerRound {
		return models.RoundContent{}, fmt.Errorf("%w: %d choices", errMalformedReply, len(choices))
	}
	choices = choices[:choicesPerRound]
	for i, c := range choices {
		body := StripLabel(c)
		if body == "" {
			return models.RoundContent{}, fmt.Errorf("%w: empty choice %d", errMalformedReply, i+1)
		}
		choices[i] = fmt.Sprintf("%c) %s", 'A'+i, body)
	}
	return models.RoundContent{Story: story, Choices: choices}, nil
}

func firstSentence(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '!', '?':
			if i+1 == len(s) || s[i+1] == ' ' {
				return s[:i+1]
			}
		}
	}
	return s
}

// lowerFirst lowercases the first letter unless it starts an acronym.
func lowerFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError || !unicode.IsUpper(first) {
		return s
	}
	if next, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}
