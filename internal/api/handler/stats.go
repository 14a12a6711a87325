package handler

import (
	"net/http"

	"github.com/odogan/champguess-go/internal/api/apierr"
	"github.com/odogan/champguess-go/internal/api/middleware"
	"github.com/odogan/champguess-go/internal/api/response"
	"github.com/odogan/champguess-go/internal/model"
	"github.com/odogan/champguess-go/internal/services/stats"
)

// StatsHandler handles player stats and leaderboard endpoints
type StatsHandler struct {
	statsService *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *stats.Service) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func queryKind(r *http.Request) (model.GameKind, error) {
	kind := model.GameKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = model.KindChampion
	}
	if !model.ValidKind(kind) {
		return "", model.ErrInvalidGameKind
	}
	return kind, nil
}

// GetMyStats handles GET /api/v1/players/me/stats
func (h *StatsHandler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	kind, err := queryKind(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	playerStats, err := h.statsService.PlayerStats(r.Context(), ident.ID, kind)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(playerStats))
}

// GetLeaderboard handles GET /api/v1/leaderboard
func (h *StatsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	kind, err := queryKind(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	board, err := h.statsService.Leaderboard(r.Context(), kind, ident.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromService(board))
}
