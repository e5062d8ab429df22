package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/SamMauldin/super-sorting-system/assets"
)

// itemsHandler handles GET /data/items.
func (s *Server) itemsHandler(c *echo.Context) error {
	return c.Blob(http.StatusOK, "application/json", assets.ItemsJSON)
}

// enchantmentsHandler handles GET /data/enchantments.
func (s *Server) enchantmentsHandler(c *echo.Context) error {
	return c.Blob(http.StatusOK, "application/json", assets.EnchantmentsJSON)
}

// recipesHandler handles GET /data/recipes.
func (s *Server) recipesHandler(c *echo.Context) error {
	return c.Blob(http.StatusOK, "application/json", assets.RecipesJSON)
}
