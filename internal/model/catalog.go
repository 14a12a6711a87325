package model

import "time"

// LanguageCode identifies a display language (e.g. "en", "tr", "de")
type LanguageCode string

// ChampionID uniquely identifies a champion
type ChampionID string

// AbilityID uniquely identifies an ability
type AbilityID string

// CategoryID uniquely identifies a value within an attribute category
type CategoryID string

// Category is an attribute dimension used for guess feedback and clues
type Category string

const (
	CategoryPosition    Category = "position"
	CategoryRegion      Category = "region"
	CategorySpecies     Category = "species"
	CategoryResource    Category = "resource"
	CategoryCombatRange Category = "combat_range"
	CategoryGender      Category = "gender"
)

// CategoryValue is a single value of an attribute category (e.g. the
// "Demacia" region). Translations override the canonical name per language.
type CategoryValue struct {
	ID           CategoryID
	Name         string
	Translations map[LanguageCode]string
}

// LocalizedName returns the translated name for lang, falling back to the
// canonical name
func (v *CategoryValue) LocalizedName(lang LanguageCode) string {
	if v == nil {
		return ""
	}
	if name, ok := v.Translations[lang]; ok && name != "" {
		return name
	}
	return v.Name
}

// ChampionTranslation holds per-language champion text
type ChampionTranslation struct {
	Name  string
	Title string
	Lore  string
}

// Champion is an immutable catalog record. A champion may be linked to many
// values of a category in the source data; the catalog resolves the primary
// link before the record reaches this struct, so Attributes holds at most one
// value per category.
type Champion struct {
	ID          ChampionID
	Name        string
	Slug        string
	Title       string
	Lore        string
	ReleaseYear int // 0 when unknown
	Difficulty  string
	ImageURL    string
	SplashURL   string

	Attributes   map[Category]*CategoryValue
	Translations map[LanguageCode]ChampionTranslation

	CreatedAt time.Time
}

// Attribute returns the champion's value for the given category, or nil
func (c *Champion) Attribute(cat Category) *CategoryValue {
	return c.Attributes[cat]
}

// LocalizedName returns the translated champion name for lang, falling back
// to the canonical name
func (c *Champion) LocalizedName(lang LanguageCode) string {
	if t, ok := c.Translations[lang]; ok && t.Name != "" {
		return t.Name
	}
	return c.Name
}

// AbilityKey is the slot an ability occupies on a champion's kit
type AbilityKey string

const (
	AbilityKeyPassive AbilityKey = "passive"
	AbilityKeyQ       AbilityKey = "q"
	AbilityKeyW       AbilityKey = "w"
	AbilityKeyE       AbilityKey = "e"
	AbilityKeyR       AbilityKey = "r"
)

// AbilityTranslation holds per-language ability text
type AbilityTranslation struct {
	Name        string
	Description string
}

// Ability is a catalog record for one champion ability
type Ability struct {
	ID          AbilityID
	ChampionID  ChampionID
	Name        string
	Key         AbilityKey
	Description string
	ImageURL    string

	Translations map[LanguageCode]AbilityTranslation
}

// LocalizedName returns the translated ability name for lang, falling back
// to the canonical name
func (a *Ability) LocalizedName(lang LanguageCode) string {
	if t, ok := a.Translations[lang]; ok && t.Name != "" {
		return t.Name
	}
	return a.Name
}
