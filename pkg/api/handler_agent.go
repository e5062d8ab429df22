package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/item"
	"github.com/SamMauldin/super-sorting-system/pkg/pathfinding"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// registerAgentHandler handles POST /agent/register.
func (s *Server) registerAgentHandler(c *echo.Context) error {
	var resp AgentResponse
	s.state.With(func(st *state.State) {
		resp.Agent = st.Agents.Register()
	})
	return c.JSON(http.StatusOK, &resp)
}

// heartbeatHandler handles POST /agent/heartbeat. agentIDFromRequest
// plus GetAndMarkSeen below does all the work: liveness refresh is
// the entire point of this endpoint.
func (s *Server) heartbeatHandler(c *echo.Context) error {
	agentID, err := agentIDFromRequest(c)
	if err != nil {
		return err
	}

	var getErr error
	s.state.With(func(st *state.State) {
		_, getErr = st.Agents.GetAndMarkSeen(agentID)
	})
	if getErr != nil {
		return mapError(getErr)
	}
	return c.NoContent(http.StatusOK)
}

// agentAlertHandler handles POST /agent/alert.
func (s *Server) agentAlertHandler(c *echo.Context) error {
	agentID, err := agentIDFromRequest(c)
	if err != nil {
		return err
	}

	var req AgentAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var resp AlertResponse
	var getErr error
	s.state.With(func(st *state.State) {
		if _, getErr = st.Agents.GetAndMarkSeen(agentID); getErr != nil {
			return
		}
		resp.Alert = st.Alerts.AddAlert(state.AlertSource{AgentID: &agentID}, req.Description)
	})
	if getErr != nil {
		return mapError(getErr)
	}
	return c.JSON(http.StatusOK, &resp)
}

// pollOperationHandler handles POST /agent/poll_operation.
func (s *Server) pollOperationHandler(c *echo.Context) error {
	agentID, err := agentIDFromRequest(c)
	if err != nil {
		return err
	}

	var req PollOperationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var resp PollOperationResponse
	var getErr error
	conflict := false
	s.state.With(func(st *state.State) {
		agent, gerr := st.Agents.GetAndMarkSeen(agentID)
		if gerr != nil {
			getErr = gerr
			return
		}
		if agent.CurrentOperation != nil {
			conflict = true
			return
		}

		op, ok := st.Operations.TakeNextOperation(req.Location, req.HasClearInventory)
		if !ok {
			resp.Type = "OperationUnavailable"
			return
		}

		_ = st.Agents.SetOperation(agentID, &op.ID)
		resp.Type = "OperationAvailable"
		resp.Operation = &op
	})
	if getErr != nil {
		return mapError(getErr)
	}
	if conflict {
		return echo.NewHTTPError(http.StatusConflict, "agent already has an operation in progress")
	}
	return c.JSON(http.StatusOK, &resp)
}

// getHoldHandler handles GET /agent/hold/{hold_id}.
func (s *Server) getHoldHandler(c *echo.Context) error {
	if _, err := agentIDFromRequest(c); err != nil {
		return err
	}

	holdID, err := uuid.Parse(c.Param("hold_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed hold id")
	}

	var resp HoldResponse
	var found bool
	s.state.With(func(st *state.State) {
		resp.Hold, found = st.Holds.Get(holdID)
	})
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "hold not found")
	}
	return c.JSON(http.StatusOK, &resp)
}

// freeHoldHandler handles POST /agent/hold/free.
func (s *Server) freeHoldHandler(c *echo.Context) error {
	if _, err := agentIDFromRequest(c); err != nil {
		return err
	}

	var resp FreeHoldResponse
	s.state.With(func(st *state.State) {
		holds, err := st.Holds.CreateMatching(st.Inventories, state.HoldRequestFilter{EmptySlot: &struct{}{}})
		if err != nil || len(holds) == 0 {
			resp.Type = "HoldUnavailable"
			return
		}
		resp.Type = "HoldAcquired"
		resp.Hold = &holds[0]
	})
	if resp.Type == "HoldUnavailable" {
		return c.JSON(http.StatusNotFound, &resp)
	}
	return c.JSON(http.StatusOK, &resp)
}

// operationCompleteHandler handles POST /agent/operation_complete.
func (s *Server) operationCompleteHandler(c *echo.Context) error {
	agentID, err := agentIDFromRequest(c)
	if err != nil {
		return err
	}

	var req OperationCompleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.FinalStatus != state.Complete && req.FinalStatus != state.Aborted {
		return echo.NewHTTPError(http.StatusBadRequest, "final_status must be Complete or Aborted")
	}

	var resp OperationCompleteResponse
	mismatch := false
	var opErr error
	s.state.With(func(st *state.State) {
		agent, gerr := st.Agents.GetAndMarkSeen(agentID)
		if gerr != nil {
			opErr = gerr
			return
		}
		if agent.CurrentOperation == nil || *agent.CurrentOperation != req.OperationID {
			mismatch = true
			return
		}

		_ = st.Agents.SetOperation(agentID, nil)
		op, serr := st.Operations.SetOperationStatus(req.OperationID, req.FinalStatus)
		if serr != nil {
			opErr = serr
			return
		}

		if req.FinalStatus == state.Aborted {
			st.Alerts.AddAlert(state.AlertSource{AgentID: &agentID},
				"operation "+op.ID.String()+" ("+string(op.Kind.Tag)+") aborted by agent")
		}

		resp.Type = "OperationCompleted"
		resp.Operation = &op
	})
	if mismatch {
		return echo.NewHTTPError(http.StatusBadRequest, "operation does not match agent's current operation")
	}
	if opErr != nil {
		return mapError(opErr)
	}
	return c.JSON(http.StatusOK, &resp)
}

// inventoryScannedHandler handles POST /agent/inventory_scanned.
func (s *Server) inventoryScannedHandler(c *echo.Context) error {
	if _, err := agentIDFromRequest(c); err != nil {
		return err
	}

	var req InventoryScannedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slots := make([]*item.Item, len(req.Slots))
	for i, unhashed := range req.Slots {
		if unhashed == nil {
			continue
		}
		hashed := unhashed.Hash()
		slots[i] = &hashed
	}

	s.state.With(func(st *state.State) {
		st.Inventories.SetInventoryAt(req.Location, slots, req.Location.Vec3)
	})
	return c.NoContent(http.StatusOK)
}

// pathfindingHandler handles POST /agent/pathfinding.
func (s *Server) pathfindingHandler(c *echo.Context) error {
	if _, err := agentIDFromRequest(c); err != nil {
		return err
	}

	var req PathfindingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var resp PathfindingResponse
	s.state.With(func(st *state.State) {
		path, err := pathfinding.FindPath(req.StartLoc, req.EndLoc, st.SignConfig.GetConfig())
		if err != nil {
			resp.Type = "Error"
			resp.Error = err.Error()
			return
		}
		resp.Type = "PathFound"
		resp.Path = path
	})
	if resp.Type == "Error" {
		return c.JSON(http.StatusInternalServerError, &resp)
	}
	return c.JSON(http.StatusOK, &resp)
}

// signScanDataHandler handles POST /agent/sign_scan_data.
func (s *Server) signScanDataHandler(c *echo.Context) error {
	if _, err := agentIDFromRequest(c); err != nil {
		return err
	}

	var req SignScanDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.state.With(func(st *state.State) {
		for _, region := range req.ScanRegions {
			st.SignConfig.ClearArea(region.Dimension, region.Bounds[0], region.Bounds[1])
			for _, sign := range region.Signs {
				st.SignConfig.AddSign(sign)
			}
		}
	})
	return c.NoContent(http.StatusOK)
}
