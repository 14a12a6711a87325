package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/odogan/champguess-go/internal/api/apierr"
	"github.com/odogan/champguess-go/internal/api/middleware"
	"github.com/odogan/champguess-go/internal/api/response"
	"github.com/odogan/champguess-go/internal/catalog"
	"github.com/odogan/champguess-go/internal/model"
)

// ChampionHandler handles champion catalog endpoints
type ChampionHandler struct {
	catalogService *catalog.Service
}

// NewChampionHandler creates a new champion handler
func NewChampionHandler(catalogService *catalog.Service) *ChampionHandler {
	return &ChampionHandler{
		catalogService: catalogService,
	}
}

// List handles GET /api/v1/champions
func (h *ChampionHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r.Context())

	results, err := h.catalogService.List(r.Context(), lang)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SearchResultsFromService(results))
}

// Search handles GET /api/v1/champions/search
func (h *ChampionHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	lang := middleware.GetLanguage(r.Context())

	results, err := h.catalogService.Search(r.Context(), query, lang)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SearchResultsFromService(results))
}

// Get handles GET /api/v1/champions/{id}
func (h *ChampionHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r.Context())
	id := model.ChampionID(mux.Vars(r)["id"])

	champion, err := h.catalogService.ChampionDetails(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChampionFromModel(champion, lang))
}
