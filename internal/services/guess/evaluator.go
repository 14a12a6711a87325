package guess

import (
	"github.com/odogan/champguess-go/internal/model"
)

// Status describes how one attribute of a guessed champion compares to the
// target
type Status string

const (
	StatusCorrect Status = "correct"
	StatusWrong   Status = "wrong"
	// StatusHigh and StatusLow apply to release year only and point at the
	// target: high means the target released after the guessed champion.
	StatusHigh Status = "high"
	StatusLow  Status = "low"
)

// AttributeFeedback pairs the guessed champion's value for a category with
// its comparison against the target
type AttributeFeedback struct {
	Value  string
	Status Status
}

// YearFeedback carries release year comparison
type YearFeedback struct {
	Value  int
	Status Status
}

// Feedback is the per-attribute comparison of a guessed champion against the
// target. Entries are nil when either champion lacks the attribute, so the
// caller can distinguish "wrong" from "no data".
type Feedback struct {
	ChampionID   model.ChampionID
	ChampionName string
	ImageURL     string
	Correct      bool

	Position    *AttributeFeedback
	Region      *AttributeFeedback
	Species     *AttributeFeedback
	Resource    *AttributeFeedback
	CombatRange *AttributeFeedback
	Gender      *AttributeFeedback
	ReleaseYear *YearFeedback
}

// Evaluator compares guessed champions against a target champion
type Evaluator struct{}

// NewEvaluator creates a new Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate compares guessed against target attribute by attribute. Category
// values match on their IDs, never on display names, so translations do not
// affect the result.
func (e *Evaluator) Evaluate(target, guessed *model.Champion, lang model.LanguageCode) *Feedback {
	fb := &Feedback{
		ChampionID:   guessed.ID,
		ChampionName: guessed.LocalizedName(lang),
		ImageURL:     guessed.ImageURL,
		Correct:      guessed.ID == target.ID,
	}

	fb.Position = compareCategory(target, guessed, model.CategoryPosition, lang)
	fb.Region = compareCategory(target, guessed, model.CategoryRegion, lang)
	fb.Species = compareCategory(target, guessed, model.CategorySpecies, lang)
	fb.Resource = compareCategory(target, guessed, model.CategoryResource, lang)
	fb.CombatRange = compareCategory(target, guessed, model.CategoryCombatRange, lang)
	fb.Gender = compareCategory(target, guessed, model.CategoryGender, lang)
	fb.ReleaseYear = compareYear(target, guessed)

	return fb
}

func compareCategory(target, guessed *model.Champion, cat model.Category, lang model.LanguageCode) *AttributeFeedback {
	targetValue := target.Attribute(cat)
	guessedValue := guessed.Attribute(cat)
	if targetValue == nil || guessedValue == nil {
		return nil
	}

	status := StatusWrong
	if guessedValue.ID == targetValue.ID {
		status = StatusCorrect
	}
	return &AttributeFeedback{
		Value:  guessedValue.LocalizedName(lang),
		Status: status,
	}
}

func compareYear(target, guessed *model.Champion) *YearFeedback {
	if target.ReleaseYear == 0 || guessed.ReleaseYear == 0 {
		return nil
	}

	status := StatusCorrect
	switch {
	case target.ReleaseYear > guessed.ReleaseYear:
		status = StatusHigh
	case target.ReleaseYear < guessed.ReleaseYear:
		status = StatusLow
	}
	return &YearFeedback{
		Value:  guessed.ReleaseYear,
		Status: status,
	}
}
