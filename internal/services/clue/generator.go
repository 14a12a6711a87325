package clue

import (
	"fmt"

	"github.com/odogan/champguess-go/internal/model"
)

// KindBasic is the fallback clue kind used when the target champion has no
// attribute data to reveal
const KindBasic = "basic"

// Clue is a single hint about the target champion, revealed after a wrong
// guess
type Clue struct {
	Kind string
	Text string
}

// clueOrder is the reveal sequence. Attributes the champion lacks are
// skipped; clues cycle once the sequence is exhausted.
var clueOrder = []model.Category{
	model.CategoryPosition,
	model.CategoryGender,
	model.CategoryResource,
	model.CategorySpecies,
	model.CategoryRegion,
	"release_year",
	model.CategoryCombatRange,
}

// Clues are full sentences, not bare attribute values.
var clueTemplates = map[model.Category]string{
	model.CategoryPosition:    "Champion plays %s position",
	model.CategoryGender:      "Champion gender is %s",
	model.CategoryResource:    "Champion uses %s",
	model.CategorySpecies:     "Champion species is %s",
	model.CategoryRegion:      "Champion is from %s",
	model.CategoryCombatRange: "Champion combat range is %s",
}

// Generator produces progressive clues for a target champion
type Generator struct{}

// NewGenerator creates a new clue Generator
func NewGenerator() *Generator {
	return &Generator{}
}

// ForAttempt returns the clue to reveal after the given wrong attempt
// (1-based). Each attempt advances one step through the reveal sequence,
// wrapping around when the available clues run out.
func (g *Generator) ForAttempt(target *model.Champion, attempt int, lang model.LanguageCode) Clue {
	available := g.available(target, lang)
	if len(available) == 0 {
		return g.basic()
	}
	if attempt < 1 {
		attempt = 1
	}
	return available[(attempt-1)%len(available)]
}

func (g *Generator) available(target *model.Champion, lang model.LanguageCode) []Clue {
	var clues []Clue
	for _, cat := range clueOrder {
		if cat == "release_year" {
			if target.ReleaseYear != 0 {
				clues = append(clues, Clue{
					Kind: "release_year",
					Text: fmt.Sprintf("Champion was released in %d", target.ReleaseYear),
				})
			}
			continue
		}
		if value := target.Attribute(cat); value != nil {
			clues = append(clues, Clue{
				Kind: string(cat),
				Text: fmt.Sprintf(clueTemplates[cat], value.LocalizedName(lang)),
			})
		}
	}
	return clues
}

// basic is the fallback when a champion has no attribute data. The text is
// static on purpose: anything derived from the champion record risks
// revealing the answer.
func (g *Generator) basic() Clue {
	return Clue{Kind: KindBasic, Text: "Try to guess the champion that owns this ability"}
}
