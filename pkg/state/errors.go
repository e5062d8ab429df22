// Package state owns every registry the operator tracks: holds,
// inventories, operations, agents, alerts, and the compiled sign
// topology. A single State aggregate wraps them all behind one
// exclusive lock, matching the single-writer model the rest of the
// system is built around.
package state

import "errors"

// ErrAlreadyHeld is returned by HoldState.Create when a live hold
// already exists for the requested (location, slot).
var ErrAlreadyHeld = errors.New("a hold is already present for that slot")

// ErrNoMatch is returned by hold-match filters that could not find
// slots satisfying the request.
var ErrNoMatch = errors.New("no slots matched the requested filter")

// ErrOperationNotFound is returned when an operation id is unknown.
var ErrOperationNotFound = errors.New("could not find that operation")

// ErrAgentNotFound is returned when an agent id is unknown.
var ErrAgentNotFound = errors.New("could not find that agent")

// ErrUnknownNode is returned by the sign compiler when a directive
// references a pathfinding node that was never declared.
var ErrUnknownNode = errors.New("sign references an unknown node")
