package story

import (
	"fmt"
	"strings"

	"partytale/backend/internal/models"
	"partytale/backend/internal/session"
)

type themeBrief struct {
	title      string
	characters []string
	setting    string
	opening    string
	choices    [choicesPerRound]string
}

var briefs = map[string]themeBrief{
	models.ThemeSciFi: {
		title:      "SCI-FI",
		characters: []string{"Astronaut (human explorer)", "AI (advanced intelligence)", "Alien (mysterious being)"},
		setting:    "A silent space station where an unknown signal has appeared.",
		opening:    "The signal appears on the silent space station. Introduce the three characters and the signal.",
		choices:    [choicesPerRound]string{"Astronaut action", "AI action", "Alien action"},
	},
	models.ThemeRomance: {
		title:      "CAMPUS ROMANCE",
		characters: []string{"Two undergraduates (20-22), guarded but curious", "A realistic campus interruption (friend, deadline, weather)"},
		setting:    "Real Columbia University locations: Butler Library, College Walk, Low Library steps.",
		opening:    "Begin with an ordinary campus moment that feels small but emotionally charged.",
		choices:    [choicesPerRound]string{"Emotional risk or closeness", "Stay rational or guarded", "External interruption"},
	},
	models.ThemeMystery: {
		title:      "MYSTERY",
		characters: []string{"Detective (sharp-minded investigator)", "Suspect (with secrets to hide)", "Witness (knows more than they say)"},
		setting:    "A small coastal town with hidden connections.",
		opening:    "Begin with a curious discovery or an unexpected encounter.",
		choices:    [choicesPerRound]string{"Investigate deeper", "Trust intuition", "Uncover a secret"},
	},
	models.ThemeAdventure: {
		title:      "ADVENTURE",
		characters: []string{"Explorer (resourceful, quick-thinking)", "Companion (steady and loyal)", "Guide (knows the secrets of this world)"},
		setting:    "An exotic, dangerous world full of wonder and peril.",
		opening:    "Begin with an exciting moment of discovery or danger.",
		choices:    [choicesPerRound]string{"Take the risky path", "Play it safe", "Follow your instincts"},
	},
}

// buildPrompt renders the generation prompt for one round.
func buildPrompt(req session.RoundRequest, wordLimit int) string {
	theme := models.NormalizeTheme(req.Theme)
	brief := briefs[theme]

	var b strings.Builder
	fmt.Fprintf(&b, "=== INTERACTIVE %s STORY GENERATOR ===\n", brief.title)
	b.WriteString("CHARACTERS:\n")
	for _, c := range brief.characters {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	fmt.Fprintf(&b, "SETTING: %s\n\n", brief.setting)
	fmt.Fprintf(&b, "ROUND: %d of %d\n", req.Round+1, models.MaxRounds+1)

	switch {
	case req.PreviousStory != "":
		fmt.Fprintf(&b, "PREVIOUS STORY:\n%s\n\n", req.PreviousStory)
		fmt.Fprintf(&b, "PLAYERS CHOSE: %s\n", req.PreviousChoice)
		b.WriteString("Start with ONE short sentence that mentions the choice, then continue the story.\n")
	default:
		fmt.Fprintf(&b, "START: %s\n", brief.opening)
	}
	if req.Round >= models.MaxRounds {
		b.WriteString("This is the final scene. Bring the story to a satisfying close.\n")
	}

	b.WriteString("\nOUTPUT FORMAT (JSON):\n{\n")
	fmt.Fprintf(&b, "  \"story\": \"2-3 sentences, at most %d words total\",\n", wordLimit)
	b.WriteString("  \"choices\": [\n")
	for i, hint := range brief.choices {
		sep := ","
		if i == len(brief.choices)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    \"%c) [%s]\"%s\n", 'A'+i, hint, sep)
	}
	b.WriteString("  ]\n}\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("- English only\n")
	fmt.Fprintf(&b, "- Story at most %d words\n", wordLimit)
	b.WriteString("- Choices start with A), B), C) and are at most 10 words\n")
	b.WriteString("- Return ONLY the JSON, no extra text\n")
	return b.String()
}
