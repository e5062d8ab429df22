// Package pathfinding computes agent travel routes over the compiled
// sign topology: a graph of named nodes, connected within a
// dimension, with portals providing the only cross-dimension hop.
package pathfinding

import (
	"errors"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// ErrNoPath is returned when the graph search exhausts every reachable
// node without finding the destination.
var ErrNoPath = errors.New("no path available")

// ErrUnknownStartingLocation is returned when either endpoint of a
// requested path cannot be anchored to any known node.
var ErrUnknownStartingLocation = errors.New("unknown starting location")

// ResultNodeKind distinguishes a plain waypoint from a portal hop in
// a materialized path.
type ResultNodeKind string

const (
	ResultVec    ResultNodeKind = "Vec"
	ResultPortal ResultNodeKind = "Portal"
)

// ResultNode is one step of a materialized path.
type ResultNode struct {
	Kind ResultNodeKind

	Vec3 geometry.Vec3

	// Portal fields, set only when Kind == ResultPortal.
	PortalVec3     geometry.Vec3
	DestinationDim geometry.Dimension
}

// graphNode is the two-state BFS node: either a named node reached
// directly, or that same node's portal, which can only lead onward to
// the destination node name it was scanned with.
type graphNode struct {
	isPortal bool
	name     string
}

// FindPath computes a route from startLoc to endLoc over the sign
// topology in cfg. Cross-dimension requests are satisfied by routing
// through portal nodes; there is no other way to cross dimensions.
func FindPath(startLoc, endLoc geometry.Location, cfg *state.CompiledSignConfig) ([]ResultNode, error) {
	startAnchor, ok := findAlignedNode(startLoc, cfg)
	if !ok {
		return nil, ErrUnknownStartingLocation
	}
	endAnchor, ok := findAlignedNode(endLoc, cfg)
	if !ok {
		return nil, ErrUnknownStartingLocation
	}

	if startAnchor == endAnchor {
		return []ResultNode{{Kind: ResultVec, Vec3: endLoc.Vec3}}, nil
	}

	path, ok := bfs(cfg, startAnchor, endAnchor)
	if !ok {
		return nil, ErrNoPath
	}

	materialized := materialize(cfg, path, endLoc)
	return simplify(materialized), nil
}

// isInComplex reports whether loc lies inside any compiled storage
// complex of its dimension, returning the complex's name.
func isInComplex(loc geometry.Location, cfg *state.CompiledSignConfig) (string, bool) {
	for name, complex := range cfg.Complexes {
		if complex.Dim != loc.Dim {
			continue
		}

		switch complex.Kind {
		case state.ComplexFlatFloor:
			if loc.Vec3.Y != complex.YLevel+1 {
				continue
			}
			if geometry.Vec2Of(loc.Vec3).ContainedBy(complex.Bounds[0], complex.Bounds[1], 1) {
				return name, true
			}

		case state.ComplexTower:
			if loc.Vec3.Y < complex.Origin.Y || loc.Vec3.Y > complex.Origin.Y+int32(complex.Height) {
				continue
			}
			if geometry.Vec2Of(loc.Vec3) == geometry.Vec2Of(complex.Origin) {
				return name, true
			}
		}
	}
	return "", false
}

// findAlignedNode implements the 5-tier anchor-selection priority:
// containing complex, then a nearby node, then a node whose portal is
// nearby, then the overall nearest node, else failure.
func findAlignedNode(loc geometry.Location, cfg *state.CompiledSignConfig) (string, bool) {
	if name, ok := isInComplex(loc, cfg); ok {
		return name, true
	}

	for name, node := range cfg.Nodes {
		if node.Location.Dim != loc.Dim {
			continue
		}
		if node.Location.Vec3.Dist(loc.Vec3) < 3 {
			return name, true
		}
	}

	for name, node := range cfg.Nodes {
		if node.Location.Dim != loc.Dim || node.Portal == nil {
			continue
		}
		if node.Portal.Vec3.Dist(loc.Vec3) < 3 {
			return name, true
		}
	}

	var nearestName string
	var nearestDist float64
	found := false
	for name, node := range cfg.Nodes {
		if node.Location.Dim != loc.Dim {
			continue
		}
		d := node.Location.Vec3.Dist(loc.Vec3)
		if !found || d < nearestDist {
			nearestName, nearestDist, found = name, d, true
		}
	}
	if found {
		return nearestName, true
	}

	return "", false
}

// bfs searches the two-state graph (Normal(name) / Portal(name)) for
// a path from start to the goal node's Normal state.
func bfs(cfg *state.CompiledSignConfig, start, goal string) ([]graphNode, bool) {
	startNode := graphNode{name: start}
	goalNode := graphNode{name: goal}

	if startNode == goalNode {
		return []graphNode{startNode}, true
	}

	type queueEntry struct {
		node graphNode
		path []graphNode
	}

	visited := map[graphNode]struct{}{startNode: {}}
	queue := []queueEntry{{node: startNode, path: []graphNode{startNode}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range neighbors(cfg, cur.node) {
			if _, seen := visited[next]; seen {
				continue
			}
			nextPath := append(append([]graphNode{}, cur.path...), next)
			if next == goalNode {
				return nextPath, true
			}
			visited[next] = struct{}{}
			queue = append(queue, queueEntry{node: next, path: nextPath})
		}
	}

	return nil, false
}

func neighbors(cfg *state.CompiledSignConfig, n graphNode) []graphNode {
	if n.isPortal {
		node, ok := cfg.Nodes[n.name]
		if !ok || node.Portal == nil {
			return nil
		}
		if _, exists := cfg.Nodes[node.Portal.Destination]; !exists {
			return nil
		}
		return []graphNode{{name: node.Portal.Destination}}
	}

	node, ok := cfg.Nodes[n.name]
	if !ok {
		return nil
	}

	var out []graphNode
	for _, other := range node.Connections {
		out = append(out, graphNode{name: other})
	}
	if node.Portal != nil {
		out = append(out, graphNode{isPortal: true, name: n.name})
	}
	return out
}

// materialize translates a BFS path into waypoints, prepending the
// start anchor node's own location (not the physical location that was
// anchored to it — the two can differ, e.g. an agent standing inside a
// storage complex anchors to the complex's node location) and
// appending the requested physical end location.
func materialize(cfg *state.CompiledSignConfig, path []graphNode, endLoc geometry.Location) []ResultNode {
	out := make([]ResultNode, 0, len(path)+2)
	out = append(out, ResultNode{Kind: ResultVec, Vec3: cfg.Nodes[path[0].name].Location.Vec3})

	for i, n := range path {
		if n.isPortal {
			node := cfg.Nodes[n.name]
			var destDim geometry.Dimension
			if destNode, ok := cfg.Nodes[node.Portal.Destination]; ok {
				destDim = destNode.Location.Dim
			}
			out = append(out, ResultNode{Kind: ResultPortal, PortalVec3: node.Portal.Vec3, DestinationDim: destDim})
			continue
		}
		// Skip re-emitting the start anchor as a redundant Vec node; it
		// was already prepended above.
		if i == 0 {
			continue
		}
		node := cfg.Nodes[n.name]
		out = append(out, ResultNode{Kind: ResultVec, Vec3: node.Location.Vec3})
	}

	out = append(out, ResultNode{Kind: ResultVec, Vec3: endLoc.Vec3})
	return out
}

// simplify drops a Vec node iff both neighbors are also Vec nodes and
// all three are colinear along an axis-aligned line (share equality
// on at least two of the three axes). Portal nodes are always kept.
func simplify(nodes []ResultNode) []ResultNode {
	if len(nodes) < 3 {
		return nodes
	}

	out := make([]ResultNode, 0, len(nodes))
	out = append(out, nodes[0])

	for i := 1; i < len(nodes)-1; i++ {
		prev, cur, next := nodes[i-1], nodes[i], nodes[i+1]
		if cur.Kind == ResultVec && prev.Kind == ResultVec && next.Kind == ResultVec && colinear(prev.Vec3, cur.Vec3, next.Vec3) {
			continue
		}
		out = append(out, cur)
	}

	out = append(out, nodes[len(nodes)-1])
	return out
}

func colinear(a, b, c geometry.Vec3) bool {
	matches := 0
	if a.X == b.X && b.X == c.X {
		matches++
	}
	if a.Y == b.Y && b.Y == c.Y {
		matches++
	}
	if a.Z == b.Z && b.Z == c.Z {
		matches++
	}
	return matches >= 2
}
