package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/staticmesh/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupCounts(m *StaticMesh) map[int32]int {
	counts := make(map[int32]int)
	for _, bf := range m.Bndfcs() {
		counts[bf[1]]++
	}
	return counts
}

func TestBoundaryMarkers(t *testing.T) {
	m := quadGrid(t, 2)
	// Node id is i + 3j on the 3 x 3 lattice
	for _, e := range [][2]int32{{0, 1}, {2, 1}} {
		g, err := m.AddBoundaryMarker("Wall-bottom", e[0], e[1])
		require.NoError(t, err)
		assert.Equal(t, int32(0), g)
	}
	for _, e := range [][2]int32{{3, 0}, {3, 6}} {
		g, err := m.AddBoundaryMarker("inflow", e[0], e[1])
		require.NoError(t, err)
		assert.Equal(t, int32(1), g)
	}
	// Group names match without regard to case or quoting
	g, err := m.AddBoundaryMarker(`"WALL-BOTTOM"`, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(0), g)

	require.NoError(t, m.BuildInterior(true))
	require.NoError(t, m.BuildBoundary())
	assert.Equal(t, 8, m.Nbound())
	assert.Equal(t, 3, m.Nbcs())
	assert.Equal(t, []BoundaryGroup{
		{Name: "Wall-bottom", Type: types.BCWall},
		{Name: "inflow", Type: types.BCInflow},
		{Name: "unspecified", Type: types.BCNone},
	}, m.BoundaryGroups())
	assert.Equal(t, map[int32]int{0: 2, 1: 2, 2: 4}, groupCounts(m))

	// Rows stay in face index order
	for i := 1; i < m.Nbound(); i++ {
		assert.Less(t, m.Bndfcs()[i-1][0], m.Bndfcs()[i][0])
	}

	// Rebuilding after more markers replaces the unspecified group
	for _, e := range [][2]int32{{2, 5}, {5, 8}, {8, 7}, {7, 6}} {
		_, err = m.AddBoundaryMarker("outflow-far", e[0], e[1])
		require.NoError(t, err)
	}
	require.NoError(t, m.BuildBoundary())
	assert.Equal(t, 3, m.Nbcs())
	assert.Len(t, m.BoundaryGroups(), 3)
	assert.Equal(t, "outflow-far", m.BoundaryGroups()[2].Name)
	assert.Equal(t, types.BCOutflow, m.BoundaryGroups()[2].Type)
	assert.Equal(t, map[int32]int{0: 2, 1: 2, 2: 4}, groupCounts(m))

	require.NoError(t, m.SetBoundaryType("OUTFLOW-far", types.BCFarfield))
	assert.Equal(t, types.BCFarfield, m.BoundaryGroups()[2].Type)
	assert.Error(t, m.SetBoundaryType("symmetry", types.BCSymmetry))
}

func TestBoundaryMarkerErrors(t *testing.T) {
	var (
		te *TopologyError
		dm *DimensionMismatchError
	)
	m := quadGrid(t, 1)
	_, err := m.AddBoundaryMarker("wall", 0)
	assert.True(t, errors.As(err, &te))
	_, err = m.AddBoundaryMarker("wall", 0, 1, 2)
	assert.True(t, errors.As(err, &dm))
	_, err = m.AddBoundaryMarker("wall", 0, 9)
	assert.True(t, errors.As(err, &te))

	m3 := unitTet(t)
	_, err = m3.AddBoundaryMarker("wall", 0, 1)
	assert.True(t, errors.As(err, &dm))
	_, err = m3.AddBoundaryMarker("wall", 0, 1, 2)
	assert.NoError(t, err)
	assert.Empty(t, m.BoundaryGroups())
}

func TestBoundary3DMarkers(t *testing.T) {
	m := boxHex(t, 1)
	_, err := m.AddBoundaryMarker("wall-floor", 3, 2, 1, 0)
	require.NoError(t, err)
	require.NoError(t, m.BuildInterior(false))
	require.NoError(t, m.BuildBoundary())
	assert.Equal(t, 6, m.Nbound())
	assert.Equal(t, 2, m.Nbcs())
	assert.Equal(t, [BFREL]int32{0, 0, NoCell}, m.Bndfcs()[0])
	assert.Equal(t, map[int32]int{0: 1, 1: 5}, groupCounts(m))
}

func TestMarkerAfterBoundaryBuild(t *testing.T) {
	m := threeTriangles(t)
	require.NoError(t, m.BuildInterior(true))
	require.NoError(t, m.BuildBoundary())
	assert.Equal(t, []BoundaryGroup{{Name: "default", Type: types.BCNone}}, m.BoundaryGroups())

	// Edge {1, 2} is face 1
	g, err := m.AddBoundaryMarker("wall", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(0), g)
	assert.Equal(t, StageBoundary, m.Stage())
	assert.Equal(t, 3, m.Nbound())
	assert.Equal(t, 2, m.Nbcs())
	assert.Equal(t, []BoundaryGroup{
		{Name: "wall", Type: types.BCWall},
		{Name: "unspecified", Type: types.BCNone},
	}, m.BoundaryGroups())
	assert.Equal(t, [][BFREL]int32{{1, 0, -1}, {3, 1, -1}, {5, 1, -1}}, m.Bndfcs())

	s := m.Summary()
	require.Len(t, s.Groups, 2)
	assert.Equal(t, 1, s.Groups[0].Faces)
	assert.InDelta(t, 2., s.Groups[0].Area, 1e-12)
	assert.Equal(t, 2, s.Groups[1].Faces)
	assert.InDelta(t, 2*math.Sqrt(5), s.Groups[1].Area, 1e-12)
}
