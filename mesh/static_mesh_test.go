package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkShape(t *testing.T, m *StaticMesh, ndim, nnode, nface, ncell int) {
	t.Helper()
	assert.Equal(t, ndim, m.NDIM())
	assert.Equal(t, nnode, m.Nnode())
	assert.Equal(t, nface, m.Nface())
	assert.Equal(t, ncell, m.Ncell())
	assert.Equal(t, 0, m.Ngstnode())
	assert.Equal(t, 0, m.Ngstface())
	assert.Equal(t, 0, m.Ngstcell())

	assert.Len(t, m.Ndcrd, nnode)
	assert.Len(t, m.Fccnd(), nface)
	assert.Len(t, m.Fcnml(), nface)
	assert.Len(t, m.Fcara(), nface)
	assert.Len(t, m.Fctpn, nface)
	assert.Len(t, m.Fcnds, nface)
	assert.Len(t, m.Fccls(), nface)
	assert.Len(t, m.Clcnd(), ncell)
	assert.Len(t, m.Clvol(), ncell)
	assert.Len(t, m.Cltpn, ncell)
	assert.Len(t, m.Clgrp, ncell)
	assert.Len(t, m.Clnds, ncell)
	assert.Len(t, m.Clfcs, ncell)
	assert.Len(t, m.Bndfcs(), m.Nbound())
}

func checkMetricTrivial(t *testing.T, m *StaticMesh) {
	t.Helper()
	for _, v := range flatten(m.Fccnd(), 3) {
		assert.Zero(t, v)
	}
	for _, v := range flatten(m.Fcnml(), 3) {
		assert.Zero(t, v)
	}
	for _, v := range flatten(m.Clcnd(), 3) {
		assert.Zero(t, v)
	}
	for _, v := range m.Fcara() {
		assert.Zero(t, v)
	}
	for _, v := range m.Clvol() {
		assert.Zero(t, v)
	}
}

func TestConstruct(t *testing.T) {
	for _, ndim := range []int{2, 3} {
		m, err := NewStaticMesh(ndim, 0, 0, 0)
		require.NoError(t, err)
		checkShape(t, m, ndim, 0, 0, 0)
		assert.Equal(t, 0, m.Nbound())
		assert.Equal(t, StageConstructed, m.Stage())

		// Building an empty mesh is trivially fine
		require.NoError(t, m.BuildInterior(true))
		require.NoError(t, m.BuildBoundary())
		checkShape(t, m, ndim, 0, 0, 0)
		assert.Equal(t, 0, m.Nbcs())
		assert.Empty(t, m.BoundaryGroups())
	}
	for _, ndim := range []int{0, 1, 4} {
		_, err := NewStaticMesh(ndim, 1, 0, 1)
		var dm *DimensionMismatchError
		assert.True(t, errors.As(err, &dm), "ndim %d", ndim)
	}
	_, err := NewStaticMesh(2, -1, 0, 0)
	var te *TopologyError
	assert.True(t, errors.As(err, &te))
}

func Test2DTrivialTriangles(t *testing.T) {
	m := threeTriangles(t)
	checkShape(t, m, 2, 4, 0, 3)
	checkMetricTrivial(t, m)
	assert.Equal(t, [CLMND + 1]int32{3, 0, 2, 3}, m.Clnds[1])

	// Topology only
	require.NoError(t, m.BuildInterior(false))
	assert.Equal(t, StageInteriorTopology, m.Stage())
	checkShape(t, m, 2, 4, 6, 3)
	checkMetricTrivial(t, m)
	fcnds := [][FCMND + 1]int32{
		{2, 0, 1}, {2, 1, 2}, {2, 2, 0}, {2, 2, 3}, {2, 3, 0}, {2, 3, 1},
	}
	assert.Equal(t, fcnds, m.Fcnds)
	assert.Equal(t, [][FCNCL]int32{
		{0, 2}, {0, -1}, {0, 1}, {1, -1}, {1, 2}, {2, -1},
	}, m.Fccls())
	assert.Equal(t, [][CLMFC + 1]int32{
		{3, 0, 1, 2}, {3, 2, 3, 4}, {3, 4, 5, 0},
	}, m.Clfcs)
	for _, tpn := range m.Fctpn {
		assert.Equal(t, Line, tpn)
	}

	// With metric
	require.NoError(t, m.BuildInterior(true))
	assert.Equal(t, StageInteriorMetric, m.Stage())
	checkShape(t, m, 2, 4, 6, 3)
	assert.Equal(t, fcnds, m.Fcnds)
	assert.InDeltaSlice(t, []float64{
		-0.5, -0.5, 0.0, -1.0, 0.5, -0.5,
		0.5, 0.0, 0.0, 0.5, -0.5, 0.0,
	}, flatten(m.Fccnd(), 2), 1e-7)
	assert.InDeltaSlice(t, []float64{
		-0.7071068, 0.7071068, 0.0, -1.0, 0.7071068, 0.7071068,
		0.8944272, 0.4472136, -1.0, -0.0, -0.8944272, 0.4472136,
	}, flatten(m.Fcnml(), 2), 1e-7)
	assert.InDeltaSlice(t, []float64{
		math.Sqrt2, 2.0, math.Sqrt2, math.Sqrt(5), 1.0, math.Sqrt(5),
	}, m.Fcara(), 1e-12)
	assert.InDeltaSlice(t, []float64{
		0.0, -2. / 3, 1. / 3, 0.0, -1. / 3, 0.0,
	}, flatten(m.Clcnd(), 2), 1e-12)
	assert.InDeltaSlice(t, []float64{1.0, 0.5, 0.5}, m.Clvol(), 1e-12)

	// Boundary
	assert.Equal(t, 0, m.Nbcs())
	assert.Equal(t, 0, m.Nbound())
	assert.Len(t, m.Bndfcs(), 0)
	require.NoError(t, m.BuildBoundary())
	assert.Equal(t, StageBoundary, m.Stage())
	assert.Equal(t, 1, m.Nbcs())
	assert.Equal(t, 3, m.Nbound())
	assert.Equal(t, [][BFREL]int32{{1, 0, -1}, {3, 0, -1}, {5, 0, -1}}, m.Bndfcs())
	assert.Equal(t, []BoundaryGroup{{Name: "default"}}, m.BoundaryGroups())
	checkShape(t, m, 2, 4, 6, 3)

	// A later interior build does not move the stage back
	require.NoError(t, m.BuildInterior(false))
	assert.Equal(t, StageBoundary, m.Stage())
	assert.InDeltaSlice(t, []float64{1.0, 0.5, 0.5}, m.Clvol(), 1e-12)
}

func TestBuildInteriorIdempotent(t *testing.T) {
	for _, m := range []*StaticMesh{threeTriangles(t), twoTets(t), boxHex(t, 2)} {
		require.NoError(t, m.BuildInterior(true))
		fcnds := append([][FCMND + 1]int32(nil), m.Fcnds...)
		fccls := append([][FCNCL]int32(nil), m.Fccls()...)
		fccnd := append([][3]float64(nil), m.Fccnd()...)
		fcnml := append([][3]float64(nil), m.Fcnml()...)
		fcara := append([]float64(nil), m.Fcara()...)
		clcnd := append([][3]float64(nil), m.Clcnd()...)
		clvol := append([]float64(nil), m.Clvol()...)
		nface := m.Nface()

		require.NoError(t, m.BuildInterior(true))
		assert.Equal(t, nface, m.Nface())
		assert.Equal(t, fcnds, m.Fcnds)
		assert.Equal(t, fccls, m.Fccls())
		assert.Equal(t, fccnd, m.Fccnd())
		assert.Equal(t, fcnml, m.Fcnml())
		assert.Equal(t, fcara, m.Fcara())
		assert.Equal(t, clcnd, m.Clcnd())
		assert.Equal(t, clvol, m.Clvol())
	}
}

func TestBuildBoundaryPrecondition(t *testing.T) {
	m := threeTriangles(t)
	err := m.BuildBoundary()
	var pe *PreconditionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "BuildBoundary", pe.Op)
	assert.Equal(t, StageConstructed, m.Stage())
	assert.Equal(t, 0, m.Nbound())

	_, err = m.CellGraph()
	assert.True(t, errors.As(err, &pe))
}

func TestTopologyErrors(t *testing.T) {
	var (
		te *TopologyError
		dm *DimensionMismatchError
	)
	m, err := NewStaticMesh(2, 3, 0, 1)
	require.NoError(t, err)

	assert.True(t, errors.As(m.SetNode(0, 1, 2, 3), &dm))
	assert.True(t, errors.As(m.SetNode(3, 1, 2), &te))
	assert.True(t, errors.As(m.SetCell(0, Tetrahedron, 0, 0, 1, 2, 0), &dm))
	assert.True(t, errors.As(m.SetCell(0, CellType(42), 0, 0, 1, 2), &te))
	assert.True(t, errors.As(m.SetCell(0, Triangle, 0, 0, 1, 2, 0), &te))
	assert.True(t, errors.As(m.SetCell(0, Triangle, 0, 0, 1, 3), &te))
	assert.True(t, errors.As(m.SetCell(1, Triangle, 0, 0, 1, 2), &te))

	// Connectivity written directly is checked by the build
	m.Cltpn[0] = Triangle
	m.Clnds[0] = [CLMND + 1]int32{4, 0, 1, 2, 0}
	assert.True(t, errors.As(m.BuildInterior(false), &te))
	m.Clnds[0] = [CLMND + 1]int32{3, 0, 1, 7}
	assert.True(t, errors.As(m.BuildInterior(false), &te))
	m.Cltpn[0] = Line
	m.Clnds[0] = [CLMND + 1]int32{2, 0, 1}
	assert.True(t, errors.As(m.BuildInterior(false), &dm))
	m.Cltpn[0] = NonCellType
	assert.True(t, errors.As(m.BuildInterior(false), &te))
	assert.Equal(t, StageConstructed, m.Stage())
	assert.Equal(t, 0, m.Nface())

	// One edge in three triangles
	m = newMesh(t, 2,
		[][]float64{{0, 0}, {1, 0}, {0, 1}, {0, -1}, {1, 1}},
		[]testCell{
			{Triangle, 0, []int32{0, 1, 2}},
			{Triangle, 0, []int32{1, 0, 3}},
			{Triangle, 0, []int32{0, 1, 4}},
		})
	require.True(t, errors.As(m.BuildInterior(false), &te))
	assert.Equal(t, "face", te.Entity)

	// Collapsed triangle
	m = newMesh(t, 2,
		[][]float64{{0, 0}, {1, 0}, {2, 0}},
		[]testCell{{Triangle, 0, []int32{0, 1, 2}}})
	require.NoError(t, m.BuildInterior(false))
	assert.True(t, errors.As(m.BuildInterior(true), &te))
	assert.Equal(t, StageInteriorTopology, m.Stage())
}

func TestFailedBuildKeepsCommittedData(t *testing.T) {
	m := threeTriangles(t)
	require.NoError(t, m.BuildInterior(false))
	fcnds := append([][FCMND + 1]int32(nil), m.Fcnds...)

	// Move node 3 onto node 0 to collapse faces and cells
	m.Ndcrd[3] = m.Ndcrd[0]
	var te *TopologyError
	require.True(t, errors.As(m.BuildInterior(true), &te))
	assert.Equal(t, StageInteriorTopology, m.Stage())
	assert.Equal(t, 6, m.Nface())
	assert.Equal(t, fcnds, m.Fcnds)
	checkMetricTrivial(t, m)
}

func TestClockwiseCell(t *testing.T) {
	m := newMesh(t, 2,
		[][]float64{{0, 0}, {0, 1}, {1, 0}},
		[]testCell{{Triangle, 0, []int32{0, 1, 2}}})
	require.NoError(t, m.BuildInterior(true))
	assert.InDelta(t, 0.5, m.Clvol()[0], 1e-12)
	assert.InDeltaSlice(t, []float64{1. / 3, 1. / 3}, flatten(m.Clcnd(), 2), 1e-12)
	// Face nodes were reversed so every normal leaves the cell
	assert.Equal(t, [FCMND + 1]int32{2, 1, 0}, m.Fcnds[0])
	for ifc := range m.Fcnds {
		d := [2]float64{
			m.Fccnd()[ifc][0] - m.Clcnd()[0][0],
			m.Fccnd()[ifc][1] - m.Clcnd()[0][1],
		}
		assert.Greater(t, d[0]*m.Fcnml()[ifc][0]+d[1]*m.Fcnml()[ifc][1], 0.)
	}
}

func TestSuppliedFaces(t *testing.T) {
	m, err := NewStaticMesh(2, 3, 3, 1)
	require.NoError(t, err)
	require.NoError(t, m.SetNode(0, 0, 0))
	require.NoError(t, m.SetNode(1, 1, 0))
	require.NoError(t, m.SetNode(2, 0, 1))
	require.NoError(t, m.SetCell(0, Triangle, 0, 0, 1, 2))
	m.Fcnds[0] = [FCMND + 1]int32{2, 0, 1}
	m.Fcnds[1] = [FCMND + 1]int32{2, 1, 2}
	m.Fcnds[2] = [FCMND + 1]int32{2, 2, 0}
	m.Clfcs[0] = [CLMFC + 1]int32{3, 0, 1, 2}

	require.NoError(t, m.BuildInterior(true))
	checkShape(t, m, 2, 3, 3, 1)
	assert.Equal(t, []CellType{Line, Line, Line}, m.Fctpn)
	assert.Equal(t, [][FCNCL]int32{{0, -1}, {0, -1}, {0, -1}}, m.Fccls())
	assert.InDelta(t, 0.5, m.Clvol()[0], 1e-12)
	assert.InDeltaSlice(t, []float64{1, math.Sqrt2, 1}, m.Fcara(), 1e-12)
	require.NoError(t, m.BuildBoundary())
	assert.Equal(t, 3, m.Nbound())

	// A face nobody references
	m, err = NewStaticMesh(2, 3, 1, 1)
	require.NoError(t, err)
	require.NoError(t, m.SetCell(0, Triangle, 0, 0, 1, 2))
	m.Fcnds[0] = [FCMND + 1]int32{2, 0, 1}
	var te *TopologyError
	assert.True(t, errors.As(m.BuildInterior(false), &te))

	// A diagonal is not an edge of the quadrilateral
	m, err = NewStaticMesh(2, 4, 4, 1)
	require.NoError(t, err)
	for i, crd := range [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		require.NoError(t, m.SetNode(i, crd[0], crd[1]))
	}
	require.NoError(t, m.SetCell(0, Quadrilateral, 0, 0, 1, 2, 3))
	m.Fcnds[0] = [FCMND + 1]int32{2, 0, 1}
	m.Fcnds[1] = [FCMND + 1]int32{2, 1, 2}
	m.Fcnds[2] = [FCMND + 1]int32{2, 2, 3}
	m.Fcnds[3] = [FCMND + 1]int32{2, 0, 2}
	m.Clfcs[0] = [CLMFC + 1]int32{4, 0, 1, 2, 3}
	require.True(t, errors.As(m.BuildInterior(true), &te))
	assert.Equal(t, "face", te.Entity)
	assert.Equal(t, 3, te.Index)
	assert.Equal(t, StageConstructed, m.Stage())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "Constructed", StageConstructed.String())
	assert.Equal(t, "Boundary", StageBoundary.String())
	assert.Equal(t, "Unknown", Stage(StageBoundary+1).String())
	assert.Equal(t, "Unknown", Stage(255).String())
}
