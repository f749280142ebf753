package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellGraph(t *testing.T) {
	{ // Every pair of the triangle fan shares an edge
		m := threeTriangles(t)
		require.NoError(t, m.BuildInterior(false))
		g, err := m.CellGraph()
		require.NoError(t, err)
		r, c := g.Dims()
		assert.Equal(t, 3, r)
		assert.Equal(t, 3, c)
		assert.Equal(t, 6, g.NNZ())
		for i := 0; i < 3; i++ {
			assert.Zero(t, g.At(i, i))
			for j := 0; j < 3; j++ {
				if i != j {
					assert.Equal(t, 2., g.At(i, j))
				}
			}
		}
	}
	{ // Hexahedra share quadrilaterals
		m := boxHex(t, 2)
		require.NoError(t, m.BuildInterior(false))
		xadj, adjncy, adjwgt, err := m.adjacency()
		require.NoError(t, err)
		assert.Len(t, xadj, 9)
		// 12 interior faces, each stored in both directions
		assert.Len(t, adjncy, 24)
		for icl := 0; icl < 8; icl++ {
			assert.Equal(t, int32(3), xadj[icl+1]-xadj[icl])
		}
		for _, w := range adjwgt {
			assert.Equal(t, int32(4), w)
		}
	}
	{ // A lone cell has no edges
		m := unitTet(t)
		require.NoError(t, m.BuildInterior(false))
		g, err := m.CellGraph()
		require.NoError(t, err)
		assert.Zero(t, g.NNZ())
	}
	{
		m, err := NewStaticMesh(2, 0, 0, 0)
		require.NoError(t, err)
		require.NoError(t, m.BuildInterior(false))
		_, err = m.CellGraph()
		var pe *PreconditionError
		assert.True(t, errors.As(err, &pe))
	}
}
