package factory

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/odogan/champguess-go/internal/dependencies/mocks"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestCatalog seeds a small champion catalog for testing
func (t *TestApp) LoadTestCatalog(ctx context.Context) error {
	champions := []*model.Champion{
		{
			ID:          "darius",
			Name:        "Darius",
			Title:       "the Hand of Noxus",
			ReleaseYear: 2012,
			Attributes: map[model.Category]*model.CategoryValue{
				model.CategoryPosition:    {ID: "top", Name: "Top"},
				model.CategoryRegion:      {ID: "noxus", Name: "Noxus"},
				model.CategorySpecies:     {ID: "human", Name: "Human"},
				model.CategoryResource:    {ID: "mana", Name: "Mana"},
				model.CategoryCombatRange: {ID: "melee", Name: "Melee"},
				model.CategoryGender:      {ID: "male", Name: "Male"},
			},
		},
		{
			ID:          "garen",
			Name:        "Garen",
			Title:       "the Might of Demacia",
			ReleaseYear: 2010,
			Attributes: map[model.Category]*model.CategoryValue{
				model.CategoryPosition:    {ID: "top", Name: "Top"},
				model.CategoryRegion:      {ID: "demacia", Name: "Demacia"},
				model.CategorySpecies:     {ID: "human", Name: "Human"},
				model.CategoryResource:    {ID: "none", Name: "Manaless"},
				model.CategoryCombatRange: {ID: "melee", Name: "Melee"},
				model.CategoryGender:      {ID: "male", Name: "Male"},
			},
		},
		{
			ID:          "ahri",
			Name:        "Ahri",
			Title:       "the Nine-Tailed Fox",
			ReleaseYear: 2011,
			Attributes: map[model.Category]*model.CategoryValue{
				model.CategoryPosition:    {ID: "mid", Name: "Mid"},
				model.CategoryRegion:      {ID: "ionia", Name: "Ionia"},
				model.CategorySpecies:     {ID: "vastaya", Name: "Vastaya"},
				model.CategoryResource:    {ID: "mana", Name: "Mana"},
				model.CategoryCombatRange: {ID: "ranged", Name: "Ranged"},
				model.CategoryGender:      {ID: "female", Name: "Female"},
			},
		},
	}
	for _, champion := range champions {
		if err := t.Storage.SaveChampion(ctx, champion); err != nil {
			return err
		}
	}

	abilities := []*model.Ability{
		{ID: "darius-passive", ChampionID: "darius", Name: "Hemorrhage", Key: model.AbilityKeyPassive},
		{ID: "darius-q", ChampionID: "darius", Name: "Decimate", Key: model.AbilityKeyQ},
		{ID: "darius-r", ChampionID: "darius", Name: "Noxian Guillotine", Key: model.AbilityKeyR},
		{ID: "garen-q", ChampionID: "garen", Name: "Decisive Strike", Key: model.AbilityKeyQ},
		{ID: "ahri-q", ChampionID: "ahri", Name: "Orb of Deception", Key: model.AbilityKeyQ},
	}
	for _, ability := range abilities {
		if err := t.Storage.SaveAbility(ctx, ability); err != nil {
			return err
		}
	}
	return nil
}
