package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/odogan/champguess-go/internal/api/apierr"
	"github.com/odogan/champguess-go/internal/api/response"
	"github.com/odogan/champguess-go/internal/importer"
)

// AdminHandler handles catalog administration endpoints. All routes require
// the admin token; an empty configured token disables them.
type AdminHandler struct {
	importer   *importer.Importer
	adminToken string
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(imp *importer.Importer, adminToken string) *AdminHandler {
	return &AdminHandler{
		importer:   imp,
		adminToken: adminToken,
	}
}

// authorize distinguishes a missing token (401) from a wrong one (403).
func (h *AdminHandler) authorize(r *http.Request) error {
	token := r.Header.Get("X-Admin-Token")
	if token == "" {
		return apierr.NewUnauthorizedError()
	}
	if h.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
		return apierr.NewForbiddenError("invalid admin token")
	}
	return nil
}

// ImportCatalog handles POST /api/v1/admin/import with an HTML champion
// index as the request body
func (h *AdminHandler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r); err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.importer.ImportHTML(r.Context(), r.Body)
	if err != nil {
		if errors.Is(err, importer.ErrNoChampions) {
			apierr.WriteError(w, apierr.NewInvalidRequestError(err.Error()))
			return
		}
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ImportResult{
		Champions: result.Champions,
		Abilities: result.Abilities,
	})
}
