package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajidhasan/forumhub/backend/internal/forum"
	"github.com/sajidhasan/forumhub/backend/internal/middleware"
)

// callerFromContext converts the JWT claims on the request into a forum
// caller. Routes behind the auth middleware always have claims; a miss
// means a wiring bug, surfaced as 401.
func callerFromContext(c echo.Context) (forum.Caller, error) {
	claims, ok := middleware.CallerFromContext(c)
	if !ok {
		return forum.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return forum.Caller{ID: claims.UserID, Name: claims.Username, Role: claims.Role}, nil
}

// mapForumError translates the forum error taxonomy into HTTP errors.
// Unrecognized errors are logged and returned as 500.
func mapForumError(err error) error {
	switch {
	case errors.Is(err, forum.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, forum.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, forum.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
