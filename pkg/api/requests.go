package api

import (
	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/item"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// AgentAlertRequest is the body of POST /agent/alert.
type AgentAlertRequest struct {
	Description string `json:"description"`
}

// OperationCompleteRequest is the body of POST /agent/operation_complete.
type OperationCompleteRequest struct {
	OperationID  uuid.UUID            `json:"operation_id"`
	FinalStatus  state.OperationStatus `json:"final_status"`
}

// InventoryScannedRequest is the body of POST /agent/inventory_scanned.
// A nil entry in Slots denotes an empty slot.
type InventoryScannedRequest struct {
	Location geometry.Location       `json:"location"`
	Slots    []*item.UnhashedItem    `json:"slots"`
}

// PollOperationRequest is the body of POST /agent/poll_operation: the
// requesting agent's current location and whether it is carrying
// nothing, both needed by the scheduler's eligibility/tiebreak rules.
type PollOperationRequest struct {
	Location          geometry.Location `json:"location"`
	HasClearInventory bool              `json:"has_clear_inventory"`
}

// PathfindingRequest is the body of POST /agent/pathfinding.
type PathfindingRequest struct {
	StartLoc geometry.Location `json:"start_loc"`
	EndLoc   geometry.Location `json:"end_loc"`
}

// ScanRegion is one region of a sign scan: the signs found within
// bounds, which replace whatever was previously known there.
type ScanRegion struct {
	Signs     []state.Sign          `json:"signs"`
	Bounds    [2]geometry.Vec2      `json:"bounds"`
	Dimension geometry.Dimension    `json:"dimension"`
}

// SignScanDataRequest is the body of POST /agent/sign_scan_data.
type SignScanDataRequest struct {
	ScanRegions []ScanRegion `json:"scan_regions"`
}

// HoldsRequest is the body of POST /automation/holds: one filter per
// result, evaluated in order against live state.
type HoldsRequest struct {
	Requests []state.HoldRequestFilter `json:"requests"`
}

// CreateOperationRequest is the body of POST /automation/operations.
type CreateOperationRequest struct {
	Priority state.OperationPriority `json:"priority"`
	Kind     state.OperationKind     `json:"kind"`
}
