package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "flash"

const (
	flashError   = "error"
	flashSuccess = "success"
)

// Flash is a one-shot notification carried across a redirect.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// setFlash stores a notification for the next request.
func setFlash(c echo.Context, category, message string) {
	payload, err := json.Marshal(Flash{Category: category, Message: message})
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash returns the pending notification, if any, and clears it.
func popFlash(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flash Flash
	if err := json.Unmarshal(raw, &flash); err != nil {
		return nil
	}
	return &flash
}
