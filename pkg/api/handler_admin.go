package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/SamMauldin/super-sorting-system/pkg/stats"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// statsHandler handles GET /admin/stats.
func (s *Server) statsHandler(c *echo.Context) error {
	var snapshot stats.Stats
	s.state.With(func(st *state.State) {
		snapshot = stats.Calculate(st)
	})
	return c.JSON(http.StatusOK, &snapshot)
}
