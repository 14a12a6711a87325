package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/odogan/champguess-go/internal/api/apierr"
	"github.com/odogan/champguess-go/internal/api/middleware"
	"github.com/odogan/champguess-go/internal/api/request"
	"github.com/odogan/champguess-go/internal/api/response"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/services/game"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Start handles POST /api/v1/games
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	mode, err := model.ModeByName(req.Mode)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	ident := middleware.MustGetIdentity(r.Context())
	session, err := h.gameController.Start(r.Context(), ident.ID, model.GameKind(req.Kind), mode, req.Bonus)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(session))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	session, err := h.gameController.Session(r.Context(), sessionID, ident.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(session))
}

// Guess handles POST /api/v1/games/{id}/guesses
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ChampionID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("champion_id is required"))
		return
	}

	ident := middleware.MustGetIdentity(r.Context())
	lang := middleware.GetLanguage(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	result, err := h.gameController.SubmitGuess(r.Context(), sessionID, ident.ID, model.ChampionID(req.ChampionID), lang)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResultFromService(result, lang))
}

// ListGuesses handles GET /api/v1/games/{id}/guesses
func (h *GameHandler) ListGuesses(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	lang := middleware.GetLanguage(r.Context())

	history, err := h.gameController.Guesses(r.Context(), sessionID, ident.ID, lang)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionGuessesFromService(history))
}

// AbilityKey handles POST /api/v1/games/{id}/ability-key
func (h *GameHandler) AbilityKey(w http.ResponseWriter, r *http.Request) {
	var req request.AbilityKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	ident := middleware.MustGetIdentity(r.Context())
	lang := middleware.GetLanguage(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	result, err := h.gameController.SubmitAbilityKey(r.Context(), sessionID, ident.ID, model.AbilityKey(req.Key))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AbilityKeyResult{
		Correct: result.Correct,
		Ability: response.AbilityFromModel(result.Ability, lang),
	})
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	if err := h.gameController.Abandon(r.Context(), sessionID, ident.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// History handles GET /api/v1/players/me/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	kind := model.GameKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = model.KindChampion
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 1 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("page must be a positive integer"))
			return
		}
		page = parsed
	}

	history, err := h.gameController.History(r.Context(), ident.ID, kind, page)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryPageFromService(history))
}
