package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	maxIdempotencyKeyLen = 128
)

// idempotencyKey reads the optional Idempotency-Key header. An absent header
// yields "", an oversized one is rejected with 400 before any service call.
func idempotencyKey(c echo.Context) (string, error) {
	key := strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return "", echo.NewHTTPError(http.StatusBadRequest, "idempotency key too long")
	}
	return key, nil
}

// pathID returns the :id path parameter, rejecting blank values.
func pathID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return id, nil
}
