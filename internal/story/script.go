package story

import (
	"slices"
	"strings"

	"partytale/backend/internal/models"
)

// script is the offline story library for one theme.
type script struct {
	scenes   []models.RoundContent
	branches map[string][]string
	flavor   string
	ending   string
	visual   string
}

var scripts = map[string]script{
	models.ThemeSciFi: {
		scenes: []models.RoundContent{
			{
				Story:   "The astronaut, the AI, and the alien meet in a silent space station. The AI warns of an unknown signal.",
				Choices: []string{"A) Trust the AI", "B) Question the AI", "C) Contact the alien"},
			},
			{
				Story:   "The signal grows louder. The alien reveals a hidden hatch. The astronaut hesitates.",
				Choices: []string{"A) Open the hatch", "B) Ask for proof", "C) Walk away"},
			},
			{
				Story:   "A strange light spills out. The AI begins to glitch. The alien offers a deal.",
				Choices: []string{"A) Accept the deal", "B) Refuse and run", "C) Shut down the AI"},
			},
		},
		branches: map[string][]string{
			"A": {"The astronaut trusts the AI and follows its warning deeper into the station.", "The AI takes control and guides them toward the signal source."},
			"B": {"The astronaut questions the AI, forcing it to reveal hidden logs.", "The AI hesitates, and the alien grows more uneasy."},
			"C": {"The astronaut addresses the alien, who hints at a breach nearby.", "The alien steps forward, revealing a sealed hatch."},
		},
		flavor: "The signal shifts again, hinting at a deeper trap.",
		ending: "At last the signal falls silent and the station drifts on.",
		visual: "A weathered astronaut in a white suit, a calm blue holographic AI, and a slender silver alien with large dark eyes.",
	},
	models.ThemeRomance: {
		scenes: []models.RoundContent{
			{
				Story:   "Two Columbia undergrads lock eyes across the library table at Butler. An awkward moment stretches between them. Neither looks away.",
				Choices: []string{"A) Smile and open up", "B) Pretend to study", "C) Friend texts, leave"},
			},
			{
				Story:   "Coffee after class. They talk about everything except what matters. The rain starts outside. They stay inside.",
				Choices: []string{"A) Share headphones walking", "B) Say goodbye quickly", "C) Phone rings, family call"},
			},
			{
				Story:   "Late night on College Walk. The city glows around them. A moment of silence that says everything.",
				Choices: []string{"A) Take their hand", "B) Keep hands in pockets", "C) Roommate catches up to them"},
			},
		},
		branches: map[string][]string{
			"A": {"They open up a little, and the air feels warmer between them.", "A small confession slips out, changing the mood."},
			"B": {"They keep it light, but the distance is noticeable.", "A polite silence returns as they hold back."},
			"C": {"An interruption breaks the moment, leaving things unsaid.", "The campus noise cuts in, and the chance slips by."},
		},
		flavor: "A small pause lingers between them as the moment stretches.",
		ending: "The semester ends, and whatever this is finally has a name.",
		visual: "Two college students in autumn coats, warm library lamps, rainy campus walkways, soft film grain.",
	},
	models.ThemeMystery: {
		scenes: []models.RoundContent{
			{
				Story:   "A detective arrives at a quiet coastal town. A mysterious package arrives at the harbor. No one claims it.",
				Choices: []string{"A) Open the package", "B) Question the dock workers", "C) Wait for more clues"},
			},
			{
				Story:   "The suspect suddenly appears at the café. They seem nervous. The witness from earlier walks in.",
				Choices: []string{"A) Confront them directly", "B) Follow them discreetly", "C) Interview the witness"},
			},
			{
				Story:   "A hidden letter is discovered in the old library. It changes everything. The plot thickens.",
				Choices: []string{"A) Demand answers", "B) Do more investigation", "C) Contact the authorities"},
			},
		},
		branches: map[string][]string{
			"A": {"They dig deeper and uncover a clue tied to the suspect.", "A hidden detail links the case to the harbor."},
			"B": {"They follow intuition and spot a pattern in the witness's story.", "A hunch points to a familiar face nearby."},
			"C": {"A secret surfaces, casting doubt on earlier testimony.", "A locked drawer hints at a quiet cover-up."},
		},
		flavor: "A fresh clue surfaces, complicating the case.",
		ending: "The last piece falls into place and the town learns the truth.",
		visual: "A detective in a long grey coat, a nervous suspect, a quiet witness, foggy harbor town at dusk.",
	},
	models.ThemeAdventure: {
		scenes: []models.RoundContent{
			{
				Story:   "The explorer discovers an ancient temple deep in the jungle. Strange markings glow on the walls. Your companions look nervous.",
				Choices: []string{"A) Enter the temple", "B) Set up camp outside", "C) Search the perimeter first"},
			},
			{
				Story:   "A treasure chest appears before you. But the ground beneath is trembling. The guide hesitates.",
				Choices: []string{"A) Grab the treasure", "B) Run for higher ground", "C) Help your companion"},
			},
			{
				Story:   "You stand at a crossroads. One path glows with ancient light. The other is shrouded in darkness.",
				Choices: []string{"A) Choose the light", "B) Choose the darkness", "C) Ask for the guide's wisdom"},
			},
		},
		branches: map[string][]string{
			"A": {"They take the risky path, and the ground trembles beneath them.", "A daring move reveals a new passage."},
			"B": {"They play it safe, but danger circles closer.", "Caution buys time, though the threat grows."},
			"C": {"They trust instincts and find a hidden route.", "A bold hunch leads to an unexpected ally."},
		},
		flavor: "The path shifts and a new hazard reveals itself.",
		ending: "Dawn breaks over the jungle as the party walks out alive.",
		visual: "A sunburnt explorer with a satchel, a loyal companion with a rope, a hooded guide, overgrown stone ruins.",
	},
}

func scriptFor(theme string) script {
	return scripts[models.NormalizeTheme(theme)]
}

// VisualProfile returns the character description used for illustrations.
func VisualProfile(theme string) string {
	return scriptFor(theme).visual
}

// offlineRound builds round content from the script library. The result
// depends only on the theme, the round index and the previous label.
func offlineRound(theme string, round int, previousLabel string, wordLimit int) models.RoundContent {
	s := scriptFor(theme)
	branch := ""
	if options := s.branches[previousLabel]; len(options) > 0 {
		branch = options[round%len(options)]
	}

	if round < len(s.scenes) {
		scene := s.scenes[round]
		return models.RoundContent{
			Story:   EnforceWordLimit(joinSentences(scene.Story, branch), wordLimit),
			Choices: slices.Clone(scene.Choices),
		}
	}

	lead := "A new turn unfolds without warning."
	if previousLabel != "" {
		lead = "They follow choice " + previousLabel + ", and the tension rises."
	}
	closing := s.flavor
	if round >= models.MaxRounds {
		closing = s.ending
	}
	last := s.scenes[len(s.scenes)-1]
	// The last scene opens the story only when everything fits the limit.
	story := joinSentences(last.Story, lead, branch, closing)
	if wordLimit > 0 && len(strings.Fields(story)) > wordLimit {
		story = EnforceWordLimit(joinSentences(lead, branch, closing), wordLimit)
	}
	return models.RoundContent{
		Story:   story,
		Choices: slices.Clone(last.Choices),
	}
}

func joinSentences(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
