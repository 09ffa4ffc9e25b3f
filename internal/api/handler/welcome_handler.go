package handler

import (
	"html"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// WelcomeHandler serves the public, unauthenticated landing endpoints.
type WelcomeHandler struct {
	message string
	now     func() time.Time
}

func NewWelcomeHandler(message string) *WelcomeHandler {
	return &WelcomeHandler{message: message, now: time.Now}
}

type welcomeResponse struct {
	Message    string `json:"message"`
	ServerTime string `json:"server_time,omitempty"`
}

// Index handles GET /.
//
// @Summary      Welcome page
// @Tags         public
// @Produce      json
// @Success      200  {object}  welcomeResponse
// @Router       / [get]
func (h *WelcomeHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{
		Message:    h.message,
		ServerTime: h.now().UTC().Format(time.RFC3339),
	})
}

// Hello handles GET /hello.
//
// @Summary      Static hello
// @Tags         public
// @Produce      json
// @Success      200  {object}  welcomeResponse
// @Router       /hello [get]
func (h *WelcomeHandler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{Message: "Hello World"})
}

// HelloName handles GET /hello2?name=. The name defaults to "world" and is
// HTML-escaped before rendering.
//
// @Summary      Personalised hello
// @Tags         public
// @Produce      html
// @Param        name  query  string  false  "Name to greet"
// @Success      200   {string}  string
// @Router       /hello2 [get]
func (h *WelcomeHandler) HelloName(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		name = "world"
	}
	return c.HTML(http.StatusOK, "<h1>Hello "+html.EscapeString(name)+"</h1>")
}

// Message handles GET /hello3 with the configured welcome message.
//
// @Summary      Configured welcome message
// @Tags         public
// @Produce      json
// @Success      200  {object}  welcomeResponse
// @Router       /hello3 [get]
func (h *WelcomeHandler) Message(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{Message: h.message})
}
