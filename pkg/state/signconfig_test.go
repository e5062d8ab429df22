package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
)

func TestSignConfigCompilesConnectedNodes(t *testing.T) {
	s := NewSignConfigState()
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "Hallway A", ""}, Location: loc(0, 0, 0)})
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "Hallway B", ""}, Location: loc(10, 0, 0)})
	s.AddSign(Sign{Lines: [4]string{"SSS", "path connection", "Hallway A", "Hallway B"}, Location: loc(0, 0, 0)})

	cfg := s.GetConfig()
	require.Empty(t, cfg.ValidationErrors)
	require.Empty(t, cfg.SignParseErrors)

	a := cfg.Nodes["Hallway A"]
	assert.Contains(t, a.Connections, "Hallway B")
}

func TestSignConfigDuplicateNode(t *testing.T) {
	s := NewSignConfigState()
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "Dup", ""}, Location: loc(0, 0, 0)})
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "Dup", ""}, Location: loc(1, 0, 0)})

	cfg := s.GetConfig()
	require.Len(t, cfg.ValidationErrors, 1)
	assert.Equal(t, ValidationDuplicateNode, cfg.ValidationErrors[0].Kind)
	// last write wins
	assert.Equal(t, int32(1), cfg.Nodes["Dup"].Location.Vec3.X)
}

func TestSignConfigInterdimensionalConnectionRejected(t *testing.T) {
	s := NewSignConfigState()
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "A", ""}, Location: geometry.Location{Vec3: geometry.Vec3{}, Dim: geometry.Overworld}})
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "B", ""}, Location: geometry.Location{Vec3: geometry.Vec3{}, Dim: geometry.Nether}})
	s.AddSign(Sign{Lines: [4]string{"SSS", "path connection", "A", "B"}, Location: loc(0, 0, 0)})

	cfg := s.GetConfig()
	require.Len(t, cfg.ValidationErrors, 1)
	assert.Equal(t, ValidationInterdimensionalConnection, cfg.ValidationErrors[0].Kind)
	assert.Empty(t, cfg.Nodes["A"].Connections)
}

func TestSignConfigPortalAllowsMissingDestination(t *testing.T) {
	s := NewSignConfigState()
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "Source", ""}, Location: loc(0, 0, 0)})
	s.AddSign(Sign{Lines: [4]string{"SSS", "portal", "Source", "FarSide"}, Location: loc(0, 0, 0)})

	cfg := s.GetConfig()
	require.Contains(t, cfg.Nodes, "Source")
	require.NotNil(t, cfg.Nodes["Source"].Portal)
	assert.Equal(t, "FarSide", cfg.Nodes["Source"].Portal.Destination)

	var sawUnknownFarSide bool
	for _, e := range cfg.ValidationErrors {
		if e.Kind == ValidationUnknownNode && e.Name == "FarSide" {
			sawUnknownFarSide = true
		}
	}
	assert.True(t, sawUnknownFarSide)
}

func TestSignConfigClearAreaInvalidatesCache(t *testing.T) {
	s := NewSignConfigState()
	s.AddSign(Sign{Lines: [4]string{"SSS", "path node", "Gone", ""}, Location: loc(5, 0, 5)})

	cfg := s.GetConfig()
	require.Contains(t, cfg.Nodes, "Gone")

	s.ClearArea(geometry.Overworld, geometry.Vec2{X: 0, Z: 0}, geometry.Vec2{X: 10, Z: 10})

	cfg = s.GetConfig()
	assert.NotContains(t, cfg.Nodes, "Gone")
}

func TestSignConfigStorageComplexNodeLocation(t *testing.T) {
	s := NewSignConfigState()
	s.AddSign(Sign{Lines: [4]string{"SSS", "storage complex", "10,0,10", "Warehouse"}, Location: loc(0, 64, 0)})

	cfg := s.GetConfig()
	require.Contains(t, cfg.Nodes, "Warehouse")
	assert.Equal(t, int32(65), cfg.Nodes["Warehouse"].Location.Vec3.Y)

	require.Contains(t, cfg.Complexes, "Warehouse")
	assert.Equal(t, ComplexFlatFloor, cfg.Complexes["Warehouse"].Kind)
}
