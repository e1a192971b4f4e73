package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// callerID extracts the authenticated caller's id injected by the Auth
// middleware. Its presence proves the middleware ran; reject otherwise.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// callerEmail extracts the authenticated caller's email claim.
func callerEmail(c echo.Context) string {
	email, _ := c.Get("email").(string)
	return email
}
