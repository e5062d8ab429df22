package state

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
)

// Sign is a raw, as-scanned four-line sign record.
type Sign struct {
	Lines    [4]string
	Location geometry.Location
}

// SignParseErrorKind enumerates the ways a Sign fails to parse into
// a ParsedSign.
type SignParseErrorKind string

const (
	SignErrNoMarker          SignParseErrorKind = "NoMarker"
	SignErrOffsetParseFailed SignParseErrorKind = "OffsetParseFailed"
	SignErrUnknownSignType   SignParseErrorKind = "UnknownSignType"
	SignErrNameEmpty         SignParseErrorKind = "NameEmpty"
	SignErrBadHeight         SignParseErrorKind = "BadHeight"
)

// SignParseError reports why a specific sign could not be parsed.
type SignParseError struct {
	Kind SignParseErrorKind
	Sign Sign
}

func (e SignParseError) Error() string {
	return fmt.Sprintf("%s: sign at %v", e.Kind, e.Sign.Location)
}

// ValidationErrorKind enumerates the ways compilation can reject a
// parsed sign: a duplicate node name (pass 1) or a bad attachment to
// the node graph (pass 2).
type ValidationErrorKind string

const (
	ValidationDuplicateNode              ValidationErrorKind = "DuplicatePathfindingNode"
	ValidationUnknownNode                ValidationErrorKind = "UnknownNode"
	ValidationInterdimensionalConnection ValidationErrorKind = "InterdimensionalConnection"
)

// ValidationError reports a pass-1/2 compilation problem.
type ValidationError struct {
	Kind ValidationErrorKind
	Name string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}

type parsedSignTag string

const (
	parsedPathfindingNode   parsedSignTag = "PathfindingNode"
	parsedPathConnection    parsedSignTag = "PathfindingConnection"
	parsedPickupChest       parsedSignTag = "PickupChest"
	parsedDropOffLocation   parsedSignTag = "DropOffLocation"
	parsedPortal            parsedSignTag = "Portal"
	parsedShulkerStation    parsedSignTag = "ShulkerStation"
	parsedStorageComplex    parsedSignTag = "StorageComplex"
	parsedStorageTower      parsedSignTag = "StorageTower"
)

type parsedSign struct {
	Tag parsedSignTag

	EffectiveLocation geometry.Location
	Name              string

	NodeA, NodeB string

	PortalDestination string

	Bounds [2]geometry.Vec2

	Height uint32
}

func parseOffset(raw string) (geometry.Vec3, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return geometry.Vec3{}, fmt.Errorf("offset parse failed")
	}
	var coords [3]int32
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return geometry.Vec3{}, fmt.Errorf("offset parse failed")
		}
		coords[i] = int32(v)
	}
	return geometry.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func parseSign(s Sign) (parsedSign, *SignParseError) {
	fail := func(kind SignParseErrorKind) *SignParseError {
		return &SignParseError{Kind: kind, Sign: s}
	}

	if !strings.HasPrefix(s.Lines[0], "SSS") {
		return parsedSign{}, fail(SignErrNoMarker)
	}

	offset := geometry.Vec3{}
	if rest, ok := strings.CutPrefix(s.Lines[0], "SSS "); ok && strings.TrimSpace(rest) != "" {
		parsed, err := parseOffset(strings.TrimSpace(rest))
		if err != nil {
			return parsedSign{}, fail(SignErrOffsetParseFailed)
		}
		offset = parsed
	}

	effective := geometry.Location{Vec3: s.Location.Vec3.Add(offset), Dim: s.Location.Dim}

	switch s.Lines[1] {
	case "path node":
		name := s.Lines[2]
		if name == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		return parsedSign{Tag: parsedPathfindingNode, EffectiveLocation: effective, Name: name}, nil

	case "path connection":
		a, b := s.Lines[2], s.Lines[3]
		if a == "" || b == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		return parsedSign{Tag: parsedPathConnection, NodeA: a, NodeB: b}, nil

	case "pickup":
		name := s.Lines[2]
		if name == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		return parsedSign{Tag: parsedPickupChest, EffectiveLocation: effective, Name: name}, nil

	case "drop-off":
		name := s.Lines[2]
		if name == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		return parsedSign{Tag: parsedDropOffLocation, EffectiveLocation: effective, Name: name}, nil

	case "portal":
		source, dest := s.Lines[2], s.Lines[3]
		if source == "" || dest == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		return parsedSign{Tag: parsedPortal, EffectiveLocation: effective, Name: source, PortalDestination: dest}, nil

	case "shulker station":
		name := s.Lines[2]
		if name == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		return parsedSign{Tag: parsedShulkerStation, Name: name}, nil

	case "storage complex":
		second, err := parseOffset(s.Lines[2])
		if err != nil {
			return parsedSign{}, fail(SignErrOffsetParseFailed)
		}
		name := s.Lines[3]
		if name == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		farCorner := effective.Vec3.Add(second)
		return parsedSign{
			Tag:               parsedStorageComplex,
			EffectiveLocation: effective,
			Name:              name,
			Bounds:            [2]geometry.Vec2{geometry.Vec2Of(effective.Vec3), geometry.Vec2Of(farCorner)},
		}, nil

	case "storage tower":
		height, err := strconv.ParseUint(strings.TrimSpace(s.Lines[2]), 10, 32)
		if err != nil {
			return parsedSign{}, fail(SignErrBadHeight)
		}
		name := s.Lines[3]
		if name == "" {
			return parsedSign{}, fail(SignErrNameEmpty)
		}
		return parsedSign{
			Tag:               parsedStorageTower,
			EffectiveLocation: effective,
			Name:              name,
			Height:            uint32(height),
		}, nil

	default:
		return parsedSign{}, fail(SignErrUnknownSignType)
	}
}

// PortalLink records a node's outgoing portal: the physical teleport
// point and the name of the destination node (which may not exist
// yet, to allow scanning one side of a portal before the other).
type PortalLink struct {
	Vec3        geometry.Vec3
	Destination string
}

// PathfindingNode is one named, attachable point in the compiled
// topology graph.
type PathfindingNode struct {
	Name           string
	Location       geometry.Location
	Connections    []string
	Pickup         *geometry.Vec3
	Dropoff        *geometry.Vec3
	Portal         *PortalLink
	ShulkerStation bool
}

// ComplexKind distinguishes the two storage-complex shapes.
type ComplexKind string

const (
	ComplexFlatFloor ComplexKind = "FlatFloor"
	ComplexTower     ComplexKind = "Tower"
)

// StorageComplex is a named storage area, either a flat floor bounded
// in (x,z) at a fixed y-level, or a vertical tower of given height.
type StorageComplex struct {
	Kind ComplexKind
	Dim  geometry.Dimension

	// FlatFloor
	YLevel int32
	Bounds [2]geometry.Vec2

	// Tower
	Origin geometry.Vec3
	Height uint32
}

// CompiledSignConfig is the immutable, shareable result of compiling
// every known sign into a pathfinding topology.
type CompiledSignConfig struct {
	Nodes            map[string]PathfindingNode
	Complexes        map[string]StorageComplex
	SignParseErrors  []SignParseError
	ValidationErrors []ValidationError
}

// SignConfigState owns the raw sign list and a dirty-flag cache of
// the compiled topology derived from it.
type SignConfigState struct {
	mu    sync.Mutex
	signs []Sign

	dirty  bool
	cached *CompiledSignConfig
}

// NewSignConfigState constructs an empty, dirty sign registry.
func NewSignConfigState() *SignConfigState {
	return &SignConfigState{dirty: true}
}

// AddSign appends a new raw sign and invalidates the cached topology.
func (s *SignConfigState) AddSign(sign Sign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signs = append(s.signs, sign)
	s.dirty = true
}

// ClearArea removes every sign in dim whose (x,z) lies within the
// axis-aligned rectangle spanned by a and b, invalidating the cache
// if anything was removed.
func (s *SignConfigState) ClearArea(dim geometry.Dimension, a, b geometry.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.signs[:0]
	removed := false
	for _, sign := range s.signs {
		if sign.Location.Dim == dim && geometry.Vec2Of(sign.Location.Vec3).ContainedBy(a, b, 0) {
			removed = true
			continue
		}
		kept = append(kept, sign)
	}
	s.signs = kept
	if removed {
		s.dirty = true
	}
}

// GetConfig returns the compiled topology, rebuilding it first if the
// sign set has changed since the last read.
func (s *SignConfigState) GetConfig() *CompiledSignConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty || s.cached == nil {
		compiled := compile(s.signs)
		s.cached = &compiled
		s.dirty = false
	}
	return s.cached
}

func compile(signs []Sign) CompiledSignConfig {
	var parsed []parsedSign
	var parseErrors []SignParseError
	for _, sign := range signs {
		p, err := parseSign(sign)
		if err != nil {
			parseErrors = append(parseErrors, *err)
			continue
		}
		parsed = append(parsed, p)
	}

	nodes := make(map[string]PathfindingNode)
	var validationErrors []ValidationError

	// Pass 1: node creation (PathfindingNode, StorageComplex, StorageTower).
	for _, p := range parsed {
		switch p.Tag {
		case parsedPathfindingNode:
			if _, exists := nodes[p.Name]; exists {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationDuplicateNode, Name: p.Name})
			}
			nodes[p.Name] = PathfindingNode{Name: p.Name, Location: p.EffectiveLocation}

		case parsedStorageComplex:
			if _, exists := nodes[p.Name]; exists {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationDuplicateNode, Name: p.Name})
			}
			loc := geometry.Location{
				Vec3: geometry.Vec3{X: p.Bounds[0].X, Y: p.EffectiveLocation.Vec3.Y + 1, Z: p.Bounds[0].Z},
				Dim:  p.EffectiveLocation.Dim,
			}
			nodes[p.Name] = PathfindingNode{Name: p.Name, Location: loc}

		case parsedStorageTower:
			if _, exists := nodes[p.Name]; exists {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationDuplicateNode, Name: p.Name})
			}
			nodes[p.Name] = PathfindingNode{Name: p.Name, Location: p.EffectiveLocation}
		}
	}

	// Pass 2: attachments.
	for _, p := range parsed {
		switch p.Tag {
		case parsedPathConnection:
			nodeA, okA := nodes[p.NodeA]
			nodeB, okB := nodes[p.NodeB]
			if !okA {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationUnknownNode, Name: p.NodeA})
				continue
			}
			if !okB {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationUnknownNode, Name: p.NodeB})
				continue
			}
			if nodeA.Location.Dim != nodeB.Location.Dim {
				validationErrors = append(validationErrors, ValidationError{
					Kind: ValidationInterdimensionalConnection,
					Name: fmt.Sprintf("%s,%s", p.NodeA, p.NodeB),
				})
				continue
			}
			nodeA.Connections = append(nodeA.Connections, p.NodeB)
			nodeB.Connections = append(nodeB.Connections, p.NodeA)
			nodes[p.NodeA] = nodeA
			nodes[p.NodeB] = nodeB

		case parsedDropOffLocation:
			node, ok := nodes[p.Name]
			if !ok {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationUnknownNode, Name: p.Name})
				continue
			}
			vec := p.EffectiveLocation.Vec3
			node.Dropoff = &vec
			nodes[p.Name] = node

		case parsedPickupChest:
			node, ok := nodes[p.Name]
			if !ok {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationUnknownNode, Name: p.Name})
				continue
			}
			vec := p.EffectiveLocation.Vec3
			node.Pickup = &vec
			nodes[p.Name] = node

		case parsedShulkerStation:
			node, ok := nodes[p.Name]
			if !ok {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationUnknownNode, Name: p.Name})
				continue
			}
			node.ShulkerStation = true
			nodes[p.Name] = node

		case parsedPortal:
			node, ok := nodes[p.Name]
			if !ok {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationUnknownNode, Name: p.Name})
				continue
			}
			if _, destExists := nodes[p.PortalDestination]; !destExists {
				validationErrors = append(validationErrors, ValidationError{Kind: ValidationUnknownNode, Name: p.PortalDestination})
			}
			node.Portal = &PortalLink{Vec3: p.EffectiveLocation.Vec3, Destination: p.PortalDestination}
			nodes[p.Name] = node
		}
	}

	// Pass 3: complexes.
	complexes := make(map[string]StorageComplex)
	for _, p := range parsed {
		switch p.Tag {
		case parsedStorageComplex:
			complexes[p.Name] = StorageComplex{
				Kind:   ComplexFlatFloor,
				Dim:    p.EffectiveLocation.Dim,
				YLevel: p.EffectiveLocation.Vec3.Y,
				Bounds: p.Bounds,
			}
		case parsedStorageTower:
			complexes[p.Name] = StorageComplex{
				Kind:   ComplexTower,
				Dim:    p.EffectiveLocation.Dim,
				Origin: p.EffectiveLocation.Vec3,
				Height: p.Height,
			}
		}
	}

	return CompiledSignConfig{
		Nodes:            nodes,
		Complexes:        complexes,
		SignParseErrors:  parseErrors,
		ValidationErrors: validationErrors,
	}
}
