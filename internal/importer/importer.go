package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage"
)

// ErrNoChampions is returned when a document contains no champion cards
var ErrNoChampions = errors.New("no champion cards found in document")

// Importer ingests champion catalog data from HTML exports of the champion
// index. Each champion is a div.champion-card carrying data attributes for
// the guessable categories and an abilities list.
type Importer struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new Importer
func New(storage storage.Storage, logger *slog.Logger) *Importer {
	return &Importer{
		storage: storage,
		logger:  logger,
	}
}

// Result summarizes one import run
type Result struct {
	Champions int
	Abilities int
}

// dataCategories maps card data attributes to catalog categories
var dataCategories = map[string]model.Category{
	"data-position":     model.CategoryPosition,
	"data-region":       model.CategoryRegion,
	"data-species":      model.CategorySpecies,
	"data-resource":     model.CategoryResource,
	"data-combat-range": model.CategoryCombatRange,
	"data-gender":       model.CategoryGender,
}

// ImportHTML parses an HTML champion index and saves every champion and
// ability it finds. Existing records with the same IDs are overwritten.
func (i *Importer) ImportHTML(ctx context.Context, r io.Reader) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	cards := doc.Find("div.champion-card")
	if cards.Length() == 0 {
		return nil, ErrNoChampions
	}

	result := &Result{}
	var parseErr error
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		champion, abilities := i.parseCard(card)
		if champion == nil {
			return true
		}

		if err := i.storage.SaveChampion(ctx, champion); err != nil {
			parseErr = err
			return false
		}
		result.Champions++

		for _, ability := range abilities {
			if err := i.storage.SaveAbility(ctx, ability); err != nil {
				parseErr = err
				return false
			}
			result.Abilities++
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	i.logger.Info("catalog import finished",
		slog.Int("champions", result.Champions),
		slog.Int("abilities", result.Abilities),
	)

	return result, nil
}

func (i *Importer) parseCard(card *goquery.Selection) (*model.Champion, []*model.Ability) {
	id, ok := card.Attr("data-champion-id")
	if !ok || id == "" {
		return nil, nil
	}

	champion := &model.Champion{
		ID:         model.ChampionID(id),
		Name:       strings.TrimSpace(card.Find(".champion-name").First().Text()),
		Title:      strings.TrimSpace(card.Find(".champion-title").First().Text()),
		Lore:       strings.TrimSpace(card.Find(".champion-lore").First().Text()),
		Slug:       card.AttrOr("data-slug", id),
		Difficulty: card.AttrOr("data-difficulty", ""),
		Attributes: make(map[model.Category]*model.CategoryValue),
	}

	if img, ok := card.Find("img.champion-portrait").First().Attr("src"); ok {
		champion.ImageURL = img
	}
	if img, ok := card.Find("img.champion-splash").First().Attr("src"); ok {
		champion.SplashURL = img
	}
	if year, err := strconv.Atoi(card.AttrOr("data-release-year", "")); err == nil {
		champion.ReleaseYear = year
	}

	for attr, cat := range dataCategories {
		value, ok := card.Attr(attr)
		if !ok || value == "" {
			continue
		}
		champion.Attributes[cat] = &model.CategoryValue{
			ID:   model.CategoryID(value),
			Name: card.AttrOr(attr+"-name", titleCase(value)),
		}
	}

	var abilities []*model.Ability
	card.Find("li.ability").Each(func(_ int, item *goquery.Selection) {
		key := model.AbilityKey(item.AttrOr("data-key", ""))
		switch key {
		case model.AbilityKeyPassive, model.AbilityKeyQ, model.AbilityKeyW, model.AbilityKeyE, model.AbilityKeyR:
		default:
			return
		}

		ability := &model.Ability{
			ID:          model.AbilityID(item.AttrOr("data-ability-id", id+"-"+string(key))),
			ChampionID:  champion.ID,
			Name:        strings.TrimSpace(item.Find(".ability-name").First().Text()),
			Key:         key,
			Description: strings.TrimSpace(item.Find(".ability-description").First().Text()),
		}
		if img, ok := item.Find("img.ability-icon").First().Attr("src"); ok {
			ability.ImageURL = img
		}
		if ability.Name == "" {
			return
		}
		abilities = append(abilities, ability)
	})

	return champion, abilities
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
