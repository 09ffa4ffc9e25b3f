package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// Info is the non-secret build and runtime description served at /actuators/info.
type Info struct {
	Name                 string `json:"name"`
	Version              string `json:"version"`
	Env                  string `json:"env"`
	GoVersion            string `json:"go_version"`
	StartedAt            string `json:"started_at"`
	AuthRealm            string `json:"auth_realm"`
	FilterEffectiveRoles bool   `json:"filter_effective_roles"`
	AccessDefaultAllow   bool   `json:"access_default_allow"`
	AccessRules          []Rule `json:"access_rules"`
}

// Rule mirrors one access policy entry for display.
type Rule struct {
	Prefix    string `json:"prefix"`
	Authority string `json:"authority"`
}

type InfoHandler struct {
	info Info
}

func NewInfoHandler(info Info) *InfoHandler {
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	if info.StartedAt == "" {
		info.StartedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return &InfoHandler{info: info}
}

// Info
//
// @Summary      Service information
// @Tags         actuators
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  Info
// @Router       /actuators/info [get]
func (h *InfoHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, h.info)
}
