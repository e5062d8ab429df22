package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

const (
	nodeRescanInterval   = 2 * time.Hour
	portalRescanInterval = 5 * time.Hour
)

type trackedNode struct {
	location geometry.Location
	portal   *geometry.Vec3

	currentScanOp *uuid.UUID
	lastScan      *time.Time

	currentPortalScanOp *uuid.UUID
	lastPortalScan      *time.Time
}

// NodeScanner maintains two independent scan cadences per topology
// node: one for the node itself, one for its portal (if it has one).
type NodeScanner struct {
	tracked map[string]*trackedNode
}

// NewNodeScanner constructs a NodeScanner with no tracked nodes yet.
func NewNodeScanner(_ *config.Config) *NodeScanner {
	return &NodeScanner{tracked: make(map[string]*trackedNode)}
}

func (s *NodeScanner) Name() string { return "node_scanner" }

func (s *NodeScanner) Tick(st *state.State) {
	cfg := st.SignConfig.GetConfig()

	refreshed := make(map[string]*trackedNode, len(cfg.Nodes))
	for name, node := range cfg.Nodes {
		prev := s.tracked[name]
		tn := &trackedNode{location: node.Location}
		if node.Portal != nil {
			v := node.Portal.Vec3
			tn.portal = &v
		}
		if prev != nil {
			tn.currentScanOp = prev.currentScanOp
			tn.lastScan = prev.lastScan
			tn.currentPortalScanOp = prev.currentPortalScanOp
			tn.lastPortalScan = prev.lastPortalScan
		}
		refreshed[name] = tn
	}
	s.tracked = refreshed

	now := time.Now()

	for _, node := range s.tracked {
		if node.currentScanOp != nil {
			op, ok := st.Operations.Get(*node.currentScanOp)
			switch {
			case !ok:
				node.currentScanOp = nil
			case op.Status == state.Complete:
				node.currentScanOp = nil
				t := now
				node.lastScan = &t
			case op.Status == state.Aborted:
				node.currentScanOp = nil
			default:
				continue
			}
		}

		if node.lastScan != nil && node.lastScan.Add(nodeRescanInterval).After(now) {
			continue
		}

		priority := state.UserInteractive
		if node.lastScan != nil {
			priority = state.Background
		}

		op := st.Operations.QueueOperation(priority, state.OperationKind{
			Tag:      state.KindScanSigns,
			Location: node.location,
		})
		node.currentScanOp = &op.ID
	}

	for _, node := range s.tracked {
		if node.portal == nil {
			continue
		}

		if node.currentPortalScanOp != nil {
			op, ok := st.Operations.Get(*node.currentPortalScanOp)
			switch {
			case !ok:
				node.currentPortalScanOp = nil
			case op.Status == state.Complete:
				node.currentPortalScanOp = nil
				t := now
				node.lastPortalScan = &t
			case op.Status == state.Aborted:
				node.currentPortalScanOp = nil
			default:
				continue
			}
		}

		if node.lastPortalScan != nil && node.lastPortalScan.Add(portalRescanInterval).After(now) {
			continue
		}

		priority := state.UserInteractive
		if node.lastPortalScan != nil {
			priority = state.Background
		}

		portal := *node.portal
		op := st.Operations.QueueOperation(priority, state.OperationKind{
			Tag:        state.KindScanSigns,
			Location:   node.location,
			TakePortal: &portal,
		})
		node.currentPortalScanOp = &op.ID
	}
}
