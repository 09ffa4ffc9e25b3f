package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/examplews/greeting-service/internal/api/metrics"
	"github.com/examplews/greeting-service/internal/core/ports"
)

// GreetingHandler handles HTTP requests for greeting operations.
type GreetingHandler struct {
	service ports.GreetingService
}

func NewGreetingHandler(service ports.GreetingService) *GreetingHandler {
	return &GreetingHandler{service: service}
}

// List handles GET /api/greetings.
//
// @Summary      List greetings
// @Tags         greetings
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  greetingListResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/greetings [get]
func (h *GreetingHandler) List(c echo.Context) error {
	gs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGreetingListResponse(gs))
}

// Get handles GET /api/greetings/:id.
//
// @Summary      Get a greeting
// @Tags         greetings
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      string  true  "Greeting ID"
// @Success      200  {object}  greetingResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/greetings/{id} [get]
func (h *GreetingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	g, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGreetingResponse(g))
}

// Create handles POST /api/greetings.
// Returns 201 on first creation, 200 when the caller's Idempotency-Key was
// already used, 409 while that earlier request is still running.
//
// @Summary      Create a greeting
// @Tags         greetings
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        Idempotency-Key  header    string                 false  "Replay protection key"
// @Param        body             body      createGreetingRequest  true   "Greeting"
// @Success      201              {object}  greetingResponse
// @Success      200              {object}  greetingResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/greetings [post]
func (h *GreetingHandler) Create(c echo.Context) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return err
	}

	var req createGreetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), toCreateInput(req, key))
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.GreetingsMutatedTotal.WithLabelValues("replay").Inc()
		return c.JSON(http.StatusOK, toGreetingResponse(result.Greeting))
	}
	metrics.GreetingsMutatedTotal.WithLabelValues("create").Inc()
	c.Response().Header().Set(echo.HeaderLocation, greetingPath(result.Greeting.ID))
	return c.JSON(http.StatusCreated, toGreetingResponse(result.Greeting))
}

// Update handles PUT /api/greetings/:id.
//
// @Summary      Update a greeting
// @Tags         greetings
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      string                 true  "Greeting ID"
// @Param        body  body      updateGreetingRequest  true  "Replacement text and last read version"
// @Success      200   {object}  greetingResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/greetings/{id} [put]
func (h *GreetingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateGreetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	g, err := h.service.Update(c.Request().Context(), toUpdateInput(id, req))
	if err != nil {
		return err
	}
	metrics.GreetingsMutatedTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toGreetingResponse(g))
}

// Delete handles DELETE /api/greetings/:id. Requires ADMIN.
//
// @Summary      Delete a greeting
// @Tags         greetings
// @Security     BasicAuth
// @Param        id   path  string  true  "Greeting ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/greetings/{id} [delete]
func (h *GreetingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.GreetingsMutatedTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
