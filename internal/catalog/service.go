package catalog

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/odogan/champguess-go/internal/dependencies/random"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/storage"
)

const maxSearchResults = 10

// Service provides read access to the champion and ability catalog,
// including target selection for new games.
type Service struct {
	storage storage.Storage
	random  random.Random
}

// New creates a new catalog Service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// RandomChampion picks a uniformly random champion from the catalog
func (s *Service) RandomChampion(ctx context.Context) (*model.Champion, error) {
	champions, err := s.storage.ListChampions(ctx)
	if err != nil {
		return nil, err
	}
	if len(champions) == 0 {
		return nil, model.ErrNoEligibleTarget
	}
	return champions[s.random.Intn(len(champions))], nil
}

// RandomChampionWithAbility picks a random champion that has at least one
// ability, then a random ability of that champion. Champions without
// abilities are skipped so an ability round always has a target.
func (s *Service) RandomChampionWithAbility(ctx context.Context) (*model.Champion, *model.Ability, error) {
	champions, err := s.storage.ListChampions(ctx)
	if err != nil {
		return nil, nil, err
	}

	var eligible []*model.Champion
	byChampion := make(map[model.ChampionID][]*model.Ability)
	for _, champion := range champions {
		abilities, err := s.storage.ListAbilitiesForChampion(ctx, champion.ID)
		if err != nil {
			return nil, nil, err
		}
		if len(abilities) > 0 {
			eligible = append(eligible, champion)
			byChampion[champion.ID] = abilities
		}
	}
	if len(eligible) == 0 {
		return nil, nil, model.ErrNoEligibleTarget
	}

	champion := eligible[s.random.Intn(len(eligible))]
	abilities := byChampion[champion.ID]
	ability := abilities[s.random.Intn(len(abilities))]
	return champion, ability, nil
}

// SearchResult is a single champion match for an autocomplete query
type SearchResult struct {
	ID       model.ChampionID
	Name     string
	ImageURL string
}

// Search finds champions whose (localized) name contains the query,
// case-insensitively. Queries shorter than 2 characters return nothing.
func (s *Service) Search(ctx context.Context, query string, lang model.LanguageCode) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, nil
	}
	needle := strings.ToLower(query)

	champions, err := s.storage.ListChampions(ctx)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, champion := range champions {
		name := champion.LocalizedName(lang)
		if !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		results = append(results, SearchResult{
			ID:       champion.ID,
			Name:     name,
			ImageURL: champion.ImageURL,
		})
		if len(results) >= maxSearchResults {
			break
		}
	}
	return results, nil
}

// List returns every champion as a summary, sorted by localized name
func (s *Service) List(ctx context.Context, lang model.LanguageCode) ([]SearchResult, error) {
	champions, err := s.storage.ListChampions(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(champions))
	for _, champion := range champions {
		results = append(results, SearchResult{
			ID:       champion.ID,
			Name:     champion.LocalizedName(lang),
			ImageURL: champion.ImageURL,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

// ChampionDetails fetches a champion by ID
func (s *Service) ChampionDetails(ctx context.Context, id model.ChampionID) (*model.Champion, error) {
	return s.storage.GetChampion(ctx, id)
}

// AbilityDetails fetches an ability by ID
func (s *Service) AbilityDetails(ctx context.Context, id model.AbilityID) (*model.Ability, error) {
	return s.storage.GetAbility(ctx, id)
}

// ChampionCount returns the number of champions in the catalog
func (s *Service) ChampionCount(ctx context.Context) (int, error) {
	champions, err := s.storage.ListChampions(ctx)
	if err != nil {
		return 0, err
	}
	return len(champions), nil
}

// seedFile is the on-disk JSON shape for catalog seed data
type seedFile struct {
	Champions []seedChampion `json:"champions"`
}

type seedChampion struct {
	model.Champion
	Abilities []model.Ability `json:"abilities"`
}

// LoadFromFile seeds the catalog from a JSON file. Existing records with
// the same IDs are overwritten.
func (s *Service) LoadFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, err
	}

	for i := range seed.Champions {
		entry := &seed.Champions[i]
		if err := s.storage.SaveChampion(ctx, &entry.Champion); err != nil {
			return 0, err
		}
		for j := range entry.Abilities {
			ability := &entry.Abilities[j]
			if ability.ChampionID == "" {
				ability.ChampionID = entry.Champion.ID
			}
			if err := s.storage.SaveAbility(ctx, ability); err != nil {
				return 0, err
			}
		}
	}
	return len(seed.Champions), nil
}
