package api

import (
	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/pathfinding"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// AgentResponse is returned by POST /agent/register.
type AgentResponse struct {
	Agent state.Agent `json:"agent"`
}

// AlertResponse is returned by POST /agent/alert.
type AlertResponse struct {
	Alert state.Alert `json:"alert"`
}

// PollOperationResponse is returned by POST /agent/poll_operation, a
// tagged union discriminated by Type.
type PollOperationResponse struct {
	Type      string           `json:"type"`
	Operation *state.Operation `json:"operation,omitempty"`
}

// HoldResponse is returned by GET /agent/hold/{hold_id}.
type HoldResponse struct {
	Hold state.Hold `json:"hold"`
}

// FreeHoldResponse is returned by POST /agent/hold/free, a tagged
// union discriminated by Type.
type FreeHoldResponse struct {
	Type string      `json:"type"`
	Hold *state.Hold `json:"hold,omitempty"`
}

// OperationCompleteResponse is returned by POST /agent/operation_complete.
type OperationCompleteResponse struct {
	Type      string           `json:"type"`
	Operation *state.Operation `json:"operation,omitempty"`
}

// PathfindingResponse is returned by POST /agent/pathfinding, a
// tagged union discriminated by Type.
type PathfindingResponse struct {
	Type  string                    `json:"type"`
	Path  []pathfinding.ResultNode  `json:"path,omitempty"`
	Error string                    `json:"error,omitempty"`
}

// InventoryContentsEntry is one element of the slice
// GET /automation/inventory_contents returns.
type InventoryContentsEntry struct {
	Location  geometry.Location `json:"location"`
	Inventory *state.Inventory  `json:"inventory"`
}

// InventoryContentsResponse is returned by GET /automation/inventory_contents.
type InventoryContentsResponse struct {
	Inventories []InventoryContentsEntry `json:"inventories"`
}

// SignConfigResponse is returned by GET /automation/sign_config.
type SignConfigResponse struct {
	Config *state.CompiledSignConfig `json:"config"`
}

// HoldsListResponse is returned by GET /automation/holds.
type HoldsListResponse struct {
	Holds []state.Hold `json:"holds"`
}

// HoldFilterResult is one element of HoldsResponse.Results: either
// the holds a filter produced, or the error it failed with.
type HoldFilterResult struct {
	Holds []state.Hold `json:"holds,omitempty"`
	Error string       `json:"error,omitempty"`
}

// HoldsResponse is returned by POST /automation/holds.
type HoldsResponse struct {
	Results []HoldFilterResult `json:"results"`
}

// RenewHoldResponse is returned by POST /automation/holds/{id}/renew.
type RenewHoldResponse struct {
	Hold state.Hold `json:"hold"`
}

// RemoveHoldResponse is returned by DELETE /automation/holds/{id}.
type RemoveHoldResponse struct {
	Hold state.Hold `json:"hold"`
}

// OperationResponse wraps a single Operation, used by both
// POST /automation/operations and GET /automation/operations/{id}.
type OperationResponse struct {
	Operation state.Operation `json:"operation"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
