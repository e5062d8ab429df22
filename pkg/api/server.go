// Package api provides the HTTP API surface agents, automation
// clients, admin tooling, and data consumers use to talk to the
// operator.
package api

import (
	"context"
	"net"
	"net/http"

	echo "github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
	"github.com/SamMauldin/super-sorting-system/pkg/version"
)

// Server is the HTTP API server.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server
	cfg        *config.Config
	state      *state.State
}

// NewServer creates a new API server with Echo v5, wiring every route
// spec.md's four API scopes name.
func NewServer(cfg *config.Config, st *state.State) *Server {
	e := echo.New()

	s := &Server{echo: e, cfg: cfg, state: st}
	s.setupRoutes()
	return s
}

// setupRoutes registers all API routes.
func (s *Server) setupRoutes() {
	s.echo.Use(middleware.BodyLimit(2 * 1024 * 1024))
	s.echo.Use(securityHeaders())

	s.echo.GET("/health", s.healthHandler)

	agentGroup := s.echo.Group("/agent", requireAgentKey(s.cfg))
	agentGroup.POST("/register", s.registerAgentHandler)
	agentGroup.POST("/heartbeat", s.heartbeatHandler)
	agentGroup.POST("/alert", s.agentAlertHandler)
	agentGroup.POST("/poll_operation", s.pollOperationHandler)
	agentGroup.GET("/hold/:hold_id", s.getHoldHandler)
	agentGroup.POST("/hold/free", s.freeHoldHandler)
	agentGroup.POST("/operation_complete", s.operationCompleteHandler)
	agentGroup.POST("/inventory_scanned", s.inventoryScannedHandler)
	agentGroup.POST("/pathfinding", s.pathfindingHandler)
	agentGroup.POST("/sign_scan_data", s.signScanDataHandler)

	automationGroup := s.echo.Group("/automation", requireAutomationKey(s.cfg))
	automationGroup.GET("/inventory_contents", s.inventoryContentsHandler)
	automationGroup.GET("/sign_config", s.signConfigHandler)
	automationGroup.GET("/holds", s.holdsIndexHandler)
	automationGroup.POST("/holds", s.createHoldsHandler)
	automationGroup.DELETE("/holds/:id", s.removeHoldHandler)
	automationGroup.POST("/holds/:id/renew", s.renewHoldHandler)
	automationGroup.POST("/operations", s.createOperationHandler)
	automationGroup.GET("/operations/:id", s.getOperationHandler)

	adminGroup := s.echo.Group("/admin", requireAdminKey(s.cfg))
	adminGroup.GET("/stats", s.statsHandler)

	dataGroup := s.echo.Group("/data", requireDataKey(s.cfg))
	dataGroup.GET("/items", s.itemsHandler)
	dataGroup.GET("/enchantments", s.enchantmentsHandler)
	dataGroup.GET("/recipes", s.recipesHandler)
}

// healthHandler handles GET /health. Unauthenticated, matching
// spec.md's transport model which gates every other endpoint behind
// an API key.
func (s *Server) healthHandler(c *echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{Status: "healthy", Version: version.Full()})
}

// Start starts the HTTP server on the given address (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.echo}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener.
// Used by test infrastructure to serve on a random OS-assigned port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.echo}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
