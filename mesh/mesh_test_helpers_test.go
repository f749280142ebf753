package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newMesh builds a mesh from coordinates and cell definitions, failing the
// test on any construction error
func newMesh(t *testing.T, ndim int, coords [][]float64, cells []testCell) *StaticMesh {
	t.Helper()
	m, err := NewStaticMesh(ndim, len(coords), 0, len(cells))
	require.NoError(t, err)
	for i, crd := range coords {
		require.NoError(t, m.SetNode(i, crd...))
	}
	for i, c := range cells {
		require.NoError(t, m.SetCell(i, c.tpn, c.group, c.nodes...))
	}
	return m
}

type testCell struct {
	tpn   CellType
	group int32
	nodes []int32
}

// threeTriangles is the fan of three triangles around the origin
func threeTriangles(t *testing.T) *StaticMesh {
	return newMesh(t, 2,
		[][]float64{{0, 0}, {-1, -1}, {1, -1}, {0, 1}},
		[]testCell{
			{Triangle, 0, []int32{0, 1, 2}},
			{Triangle, 0, []int32{0, 2, 3}},
			{Triangle, 0, []int32{0, 3, 1}},
		})
}

// unitTet is the corner tetrahedron of the unit cube
func unitTet(t *testing.T) *StaticMesh {
	return newMesh(t, 3,
		[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[]testCell{{Tetrahedron, 0, []int32{0, 1, 2, 3}}})
}

// twoTets share the face {1, 2, 3}
func twoTets(t *testing.T) *StaticMesh {
	return newMesh(t, 3,
		[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}},
		[]testCell{
			{Tetrahedron, 0, []int32{0, 1, 2, 3}},
			{Tetrahedron, 1, []int32{1, 2, 3, 4}},
		})
}

var cubeNodes = [][]float64{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// boxHex splits the unit cube into n x n x n hexahedra
func boxHex(t *testing.T, n int) *StaticMesh {
	t.Helper()
	var (
		np     = n + 1
		coords [][]float64
		cells  []testCell
		h      = 1 / float64(n)
	)
	id := func(i, j, k int) int32 { return int32(i + np*(j+np*k)) }
	for k := 0; k < np; k++ {
		for j := 0; j < np; j++ {
			for i := 0; i < np; i++ {
				coords = append(coords, []float64{float64(i) * h, float64(j) * h, float64(k) * h})
			}
		}
	}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				cells = append(cells, testCell{Hexahedron, 0, []int32{
					id(i, j, k), id(i+1, j, k), id(i+1, j+1, k), id(i, j+1, k),
					id(i, j, k+1), id(i+1, j, k+1), id(i+1, j+1, k+1), id(i, j+1, k+1),
				}})
			}
		}
	}
	return newMesh(t, 3, coords, cells)
}

// quadGrid splits the unit square into n x n quadrilaterals
func quadGrid(t *testing.T, n int) *StaticMesh {
	t.Helper()
	var (
		np     = n + 1
		coords [][]float64
		cells  []testCell
		h      = 1 / float64(n)
	)
	id := func(i, j int) int32 { return int32(i + np*j) }
	for j := 0; j < np; j++ {
		for i := 0; i < np; i++ {
			coords = append(coords, []float64{float64(i) * h, float64(j) * h})
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			cells = append(cells, testCell{Quadrilateral, 0,
				[]int32{id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)}})
		}
	}
	return newMesh(t, 2, coords, cells)
}

// flatten keeps the first ndim components of each row
func flatten(rows [][3]float64, ndim int) (out []float64) {
	for _, r := range rows {
		out = append(out, r[:ndim]...)
	}
	return
}
