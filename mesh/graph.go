package mesh

import (
	"github.com/james-bowman/sparse"
)

// CellGraph returns the symmetric ncell x ncell cell adjacency matrix. Entry
// (i, j) is the node count of the interior face shared by cells i and j, zero
// when they share no face. Boundary faces contribute nothing.
func (m *StaticMesh) CellGraph() (*sparse.CSR, error) {
	if m.stage < StageInteriorTopology {
		return nil, &PreconditionError{Op: "CellGraph", Reason: "faces are not built, call BuildInterior first"}
	}
	if m.ncell == 0 {
		return nil, &PreconditionError{Op: "CellGraph", Reason: "mesh has no cells"}
	}
	dok := sparse.NewDOK(m.ncell, m.ncell)
	for ifc := 0; ifc < m.nface; ifc++ {
		c0, c1 := int(m.fccls[ifc][0]), int(m.fccls[ifc][1])
		if c1 < 0 {
			continue
		}
		w := float64(m.Fcnds[ifc][0])
		dok.Set(c0, c1, w)
		dok.Set(c1, c0, w)
	}
	return dok.ToCSR(), nil
}

// adjacency converts the cell graph to compressed row arrays with the face
// node counts as edge weights
func (m *StaticMesh) adjacency() (xadj, adjncy, adjwgt []int32, err error) {
	var g *sparse.CSR
	if g, err = m.CellGraph(); err != nil {
		return
	}
	raw := g.RawMatrix()
	xadj = make([]int32, len(raw.Indptr))
	for i, p := range raw.Indptr {
		xadj[i] = int32(p)
	}
	adjncy = make([]int32, len(raw.Ind))
	adjwgt = make([]int32, len(raw.Ind))
	for i, j := range raw.Ind {
		adjncy[i] = int32(j)
		adjwgt[i] = int32(raw.Data[i])
	}
	return
}
