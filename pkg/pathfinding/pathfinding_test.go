package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamMauldin/super-sorting-system/pkg/geometry"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

func overworldLoc(x, y, z int32) geometry.Location {
	return geometry.Location{Vec3: geometry.Vec3{X: x, Y: y, Z: z}, Dim: geometry.Overworld}
}

func netherLoc(x, y, z int32) geometry.Location {
	return geometry.Location{Vec3: geometry.Vec3{X: x, Y: y, Z: z}, Dim: geometry.Nether}
}

func buildLinearTopology() *state.SignConfigState {
	s := state.NewSignConfigState()
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path node", "A", ""}, Location: overworldLoc(0, 64, 0)})
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path node", "B", ""}, Location: overworldLoc(10, 64, 0)})
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path node", "C", ""}, Location: overworldLoc(20, 64, 0)})
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path connection", "A", "B"}, Location: overworldLoc(0, 64, 0)})
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path connection", "B", "C"}, Location: overworldLoc(0, 64, 0)})
	return s
}

func TestFindPathSameAnchorReturnsDirect(t *testing.T) {
	s := buildLinearTopology()
	cfg := s.GetConfig()

	start := overworldLoc(0, 64, 1)
	end := overworldLoc(1, 64, 1)

	path, err := FindPath(start, end, cfg)
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, end.Vec3, path[0].Vec3)
}

func TestFindPathMultiHopSimplifiesCollinear(t *testing.T) {
	s := buildLinearTopology()
	cfg := s.GetConfig()

	start := overworldLoc(-5, 64, 0)
	end := overworldLoc(25, 64, 0)

	path, err := FindPath(start, end, cfg)
	require.NoError(t, err)

	require.Len(t, path, 2)
	assert.Equal(t, end.Vec3, path[len(path)-1].Vec3)

	for _, n := range path {
		assert.Equal(t, ResultVec, n.Kind)
	}
}

func TestFindPathUnknownStartingLocation(t *testing.T) {
	s := buildLinearTopology()
	cfg := s.GetConfig()

	// No node exists in the End dimension at all, so every tier fails.
	noNodesHere := geometry.Location{Vec3: geometry.Vec3{X: 0, Y: 64, Z: 0}, Dim: geometry.End}
	_, err := FindPath(noNodesHere, overworldLoc(0, 64, 0), cfg)
	assert.ErrorIs(t, err, ErrUnknownStartingLocation)
}

func TestFindPathThroughPortalCrossesDimensions(t *testing.T) {
	s := state.NewSignConfigState()
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path node", "Hub", ""}, Location: overworldLoc(0, 64, 0)})
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path node", "NetherHub", ""}, Location: netherLoc(0, 64, 0)})
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "portal", "Hub", "NetherHub"}, Location: overworldLoc(1, 64, 0)})

	cfg := s.GetConfig()

	start := overworldLoc(0, 64, 1)
	end := netherLoc(0, 64, 1)

	path, err := FindPath(start, end, cfg)
	require.NoError(t, err)

	var sawPortal bool
	for _, n := range path {
		if n.Kind == ResultPortal {
			sawPortal = true
			assert.Equal(t, geometry.Nether, n.DestinationDim)
		}
	}
	assert.True(t, sawPortal, "crossing dimensions must traverse a portal node")
	assert.Equal(t, end.Vec3, path[len(path)-1].Vec3)
}

func TestFindPathNoPathWhenDisconnected(t *testing.T) {
	s := state.NewSignConfigState()
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path node", "Island1", ""}, Location: overworldLoc(0, 64, 0)})
	s.AddSign(state.Sign{Lines: [4]string{"SSS", "path node", "Island2", ""}, Location: overworldLoc(500, 64, 500)})

	cfg := s.GetConfig()

	start := overworldLoc(0, 64, 1)
	end := overworldLoc(500, 64, 501)

	_, err := FindPath(start, end, cfg)
	assert.ErrorIs(t, err, ErrNoPath)
}
