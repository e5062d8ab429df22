package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
)

const apiKeyHeader = "X-Api-Key"
const agentIDHeader = "X-Agent-Id"

type keyChecker func(*config.Config, uuid.UUID) bool

// requireAPIKey builds middleware that rejects requests whose
// X-Api-Key header is missing, malformed, or not present in the key
// set allowed selects.
func requireAPIKey(cfg *config.Config, allowed keyChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			raw := c.Request().Header.Get(apiKeyHeader)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing X-Api-Key header")
			}
			key, err := uuid.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed X-Api-Key header")
			}
			if !allowed(cfg, key) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unrecognized API key")
			}
			return next(c)
		}
	}
}

func requireAdminKey(cfg *config.Config) echo.MiddlewareFunc {
	return requireAPIKey(cfg, (*config.Config).HasAdminKey)
}

func requireAgentKey(cfg *config.Config) echo.MiddlewareFunc {
	return requireAPIKey(cfg, (*config.Config).HasAgentKey)
}

func requireAutomationKey(cfg *config.Config) echo.MiddlewareFunc {
	return requireAPIKey(cfg, (*config.Config).HasAutomationKey)
}

func requireDataKey(cfg *config.Config) echo.MiddlewareFunc {
	return requireAPIKey(cfg, (*config.Config).HasDataKey)
}

// agentIDFromRequest extracts and parses the X-Agent-Id header every
// agent-scope endpoint other than /agent/register requires.
func agentIDFromRequest(c *echo.Context) (uuid.UUID, error) {
	raw := c.Request().Header.Get(agentIDHeader)
	if raw == "" {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "missing X-Agent-Id header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "malformed X-Agent-Id header")
	}
	return id, nil
}
