package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// inventoryContentsHandler handles GET /automation/inventory_contents.
func (s *Server) inventoryContentsHandler(c *echo.Context) error {
	var resp InventoryContentsResponse
	s.state.With(func(st *state.State) {
		for loc, inv := range st.Inventories.IterInventories() {
			resp.Inventories = append(resp.Inventories, InventoryContentsEntry{Location: loc, Inventory: inv})
		}
	})
	return c.JSON(http.StatusOK, &resp)
}

// signConfigHandler handles GET /automation/sign_config.
func (s *Server) signConfigHandler(c *echo.Context) error {
	var resp SignConfigResponse
	s.state.With(func(st *state.State) {
		resp.Config = st.SignConfig.GetConfig()
	})
	return c.JSON(http.StatusOK, &resp)
}

// holdsIndexHandler handles GET /automation/holds.
func (s *Server) holdsIndexHandler(c *echo.Context) error {
	var resp HoldsListResponse
	s.state.With(func(st *state.State) {
		resp.Holds = st.Holds.Iter()
	})
	return c.JSON(http.StatusOK, &resp)
}

// createHoldsHandler handles POST /automation/holds: one result per
// requested filter, evaluated in order against live state.
func (s *Server) createHoldsHandler(c *echo.Context) error {
	var req HoldsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp := HoldsResponse{Results: make([]HoldFilterResult, 0, len(req.Requests))}
	s.state.With(func(st *state.State) {
		for _, filter := range req.Requests {
			holds, err := st.Holds.CreateMatching(st.Inventories, filter)
			if err != nil {
				resp.Results = append(resp.Results, HoldFilterResult{Error: err.Error()})
				continue
			}
			resp.Results = append(resp.Results, HoldFilterResult{Holds: holds})
		}
	})
	return c.JSON(http.StatusOK, &resp)
}

// removeHoldHandler handles DELETE /automation/holds/{id}.
func (s *Server) removeHoldHandler(c *echo.Context) error {
	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed hold id")
	}

	var resp RemoveHoldResponse
	var removed bool
	s.state.With(func(st *state.State) {
		resp.Hold, removed = st.Holds.Remove(holdID)
	})
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "hold not found")
	}
	return c.JSON(http.StatusOK, &resp)
}

// renewHoldHandler handles POST /automation/holds/{id}/renew.
func (s *Server) renewHoldHandler(c *echo.Context) error {
	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed hold id")
	}

	var resp RenewHoldResponse
	var renewed bool
	s.state.With(func(st *state.State) {
		resp.Hold, renewed = st.Holds.Renew(holdID)
	})
	if !renewed {
		return echo.NewHTTPError(http.StatusNotFound, "hold not found")
	}
	return c.JSON(http.StatusOK, &resp)
}

// createOperationHandler handles POST /automation/operations.
func (s *Server) createOperationHandler(c *echo.Context) error {
	var req CreateOperationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var resp OperationResponse
	s.state.With(func(st *state.State) {
		resp.Operation = st.Operations.QueueOperation(req.Priority, req.Kind)
	})
	return c.JSON(http.StatusOK, &resp)
}

// getOperationHandler handles GET /automation/operations/{id}.
func (s *Server) getOperationHandler(c *echo.Context) error {
	opID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed operation id")
	}

	var resp OperationResponse
	var found bool
	s.state.With(func(st *state.State) {
		resp.Operation, found = st.Operations.Get(opID)
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "operation not found")
	}
	return c.JSON(http.StatusOK, &resp)
}
