package api

import (
	"errors"
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/SamMauldin/super-sorting-system/pkg/pathfinding"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// mapError maps a domain error surfaced by pkg/state or pkg/pathfinding
// to an HTTP error response, following spec.md §7's error taxonomy.
func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, state.ErrAlreadyHeld):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, state.ErrNoMatch):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, state.ErrOperationNotFound), errors.Is(err, state.ErrAgentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, state.ErrUnknownNode):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, pathfinding.ErrNoPath), errors.Is(err, pathfinding.ErrUnknownStartingLocation):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	slog.Error("unexpected handler error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
