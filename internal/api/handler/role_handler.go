package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
)

// RoleHandler exposes the currently effective roles.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type roleResponse struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Ordinal     int    `json:"ordinal"`
	EffectiveAt string `json:"effective_at"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

func toRoleResponse(r domain.Role) roleResponse {
	resp := roleResponse{
		Code:        r.Code,
		Label:       r.Label,
		Ordinal:     r.Ordinal,
		EffectiveAt: r.EffectiveAt.UTC().Format(time.RFC3339),
	}
	if r.ExpiresAt != nil {
		resp.ExpiresAt = r.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// List handles GET /api/roles.
//
// @Summary      List effective roles
// @Tags         roles
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   roleResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.service.ListEffective(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/roles/:code.
//
// @Summary      Get an effective role by code
// @Tags         roles
// @Produce      json
// @Security     BasicAuth
// @Param        code  path      string  true  "Role code (e.g. USER)"
// @Success      200   {object}  roleResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/roles/{code} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.service.GetEffective(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoleResponse(*role))
}
