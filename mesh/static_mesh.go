package mesh

import (
	"github.com/notargets/staticmesh/types"
)

const (
	FCMND = types.MaxFaceNodes // Maximum number of nodes in a face
	CLMND = 8                  // Maximum number of nodes in a cell
	CLMFC = 6                  // Maximum number of faces in a cell
	FCNCL = 2                  // Number of cells recorded per face
	BFREL = 3                  // Width of a boundary face record
)

// NoCell marks the missing neighbor of a boundary face in Fccls and the
// unused slot of a boundary face record.
const NoCell int32 = -1

// Stage is the build state of a StaticMesh. Stages only move forward.
type Stage uint8

const (
	StageConstructed Stage = iota
	StageInteriorTopology
	StageInteriorMetric
	StageBoundary
)

var stageNames = [...]string{"Constructed", "InteriorTopology", "InteriorMetric", "Boundary"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Unknown"
}

/*
StaticMesh is an unstructured 2-D or 3-D mesh with fixed node and cell
counts. The caller fills the node coordinates and cell connectivity, then
BuildInterior derives faces, face-cell adjacency and the geometric metrics, and
BuildBoundary collects faces with a single owning cell into the boundary
table.

Entity lists use fixed width rows where slot 0 holds the entry count:

	Clnds[icl] = [n, node_0, ..., node_n-1, unused...]
	Clfcs[icl] = [n, face_0, ..., face_n-1, unused...]
	Fcnds[ifc] = [n, node_0, ..., node_n-1, unused...]

A StaticMesh must not be mutated from more than one goroutine at a time.
*/
type StaticMesh struct {
	ndim  int
	stage Stage

	nnode, nface, ncell          int
	nbound, nbcs                 int
	ngstnode, ngstface, ngstcell int

	// Node coordinates. The third component is zero for 2-D meshes.
	Ndcrd [][3]float64

	// Cell type, node list, face list and group id
	Cltpn []CellType
	Clnds [][CLMND + 1]int32
	Clfcs [][CLMFC + 1]int32
	Clgrp []int32

	// Face type and node list
	Fctpn []CellType
	Fcnds [][FCMND + 1]int32

	fccls [][FCNCL]int32

	fccnd  [][3]float64
	fcnml  [][3]float64
	fcara  []float64
	clcnd  [][3]float64
	clvol  []float64
	bndfcs [][BFREL]int32

	// Boundary markers: face signature -> group, and the named groups
	markers  map[types.FaceKey]int32
	bcGroups []BoundaryGroup
	nnamed   int
}

// NewStaticMesh allocates a mesh of the given dimension and capacities. A
// positive nface means the caller supplies faces in Fctpn/Fcnds/Clfcs
// instead of having BuildInterior derive them.
func NewStaticMesh(ndim, nnode, nface, ncell int) (m *StaticMesh, err error) {
	if ndim != 2 && ndim != 3 {
		want := 2
		if ndim > 3 {
			want = 3
		}
		return nil, &DimensionMismatchError{What: "mesh", Want: want, Got: ndim}
	}
	if nnode < 0 || nface < 0 || ncell < 0 {
		return nil, topologyErrorf("mesh", 0, "negative size: nnode=%d, nface=%d, ncell=%d",
			nnode, nface, ncell)
	}
	m = &StaticMesh{
		ndim:    ndim,
		nnode:   nnode,
		nface:   nface,
		ncell:   ncell,
		Ndcrd:   make([][3]float64, nnode),
		Cltpn:   make([]CellType, ncell),
		Clnds:   make([][CLMND + 1]int32, ncell),
		Clfcs:   make([][CLMFC + 1]int32, ncell),
		Clgrp:   make([]int32, ncell),
		markers: make(map[types.FaceKey]int32),
	}
	m.allocFaces(nface)
	m.clcnd = make([][3]float64, ncell)
	m.clvol = make([]float64, ncell)
	m.bndfcs = make([][BFREL]int32, 0)
	return
}

func (m *StaticMesh) allocFaces(nface int) {
	m.Fctpn = make([]CellType, nface)
	m.Fcnds = make([][FCMND + 1]int32, nface)
	m.fccls = make([][FCNCL]int32, nface)
	for i := range m.fccls {
		m.fccls[i] = [FCNCL]int32{NoCell, NoCell}
	}
	m.fccnd = make([][3]float64, nface)
	m.fcnml = make([][3]float64, nface)
	m.fcara = make([]float64, nface)
}

// SetNode stores the coordinates of node ind, one value per dimension
func (m *StaticMesh) SetNode(ind int, coords ...float64) error {
	if ind < 0 || ind >= m.nnode {
		return topologyErrorf("node", ind, "index out of range [0,%d)", m.nnode)
	}
	if len(coords) != m.ndim {
		return &DimensionMismatchError{What: "node coordinates", Want: m.ndim, Got: len(coords)}
	}
	var crd [3]float64
	copy(crd[:], coords)
	m.Ndcrd[ind] = crd
	return nil
}

// SetCell stores the type, node list and group of cell ind
func (m *StaticMesh) SetCell(ind int, tpn CellType, group int32, nodes ...int32) error {
	if ind < 0 || ind >= m.ncell {
		return topologyErrorf("cell", ind, "index out of range [0,%d)", m.ncell)
	}
	if err := m.checkCellType(ind, tpn, len(nodes)); err != nil {
		return err
	}
	for _, nd := range nodes {
		if nd < 0 || int(nd) >= m.nnode {
			return topologyErrorf("cell", ind, "node %d out of range [0,%d)", nd, m.nnode)
		}
	}
	var row [CLMND + 1]int32
	row[0] = int32(len(nodes))
	copy(row[1:], nodes)
	m.Cltpn[ind] = tpn
	m.Clnds[ind] = row
	m.Clgrp[ind] = group
	return nil
}

func (m *StaticMesh) checkCellType(icl int, tpn CellType, nnode int) error {
	ndim := tpn.NDIM()
	switch {
	case ndim < 0 || tpn == NonCellType:
		return topologyErrorf("cell", icl, "unsupported cell type %d", tpn)
	case ndim != m.ndim:
		return &DimensionMismatchError{What: "cell " + tpn.String(), Want: m.ndim, Got: ndim}
	case nnode != tpn.NumNodes():
		return topologyErrorf("cell", icl, "%s needs %d nodes, has %d", tpn, tpn.NumNodes(), nnode)
	}
	return nil
}

// CellNodes returns the node list of a cell without the count slot
func (m *StaticMesh) CellNodes(icl int) []int32 {
	return m.Clnds[icl][1 : 1+m.Clnds[icl][0]]
}

// CellFaces returns the face list of a cell without the count slot
func (m *StaticMesh) CellFaces(icl int) []int32 {
	return m.Clfcs[icl][1 : 1+m.Clfcs[icl][0]]
}

// FaceNodes returns the node list of a face without the count slot
func (m *StaticMesh) FaceNodes(ifc int) []int32 {
	return m.Fcnds[ifc][1 : 1+m.Fcnds[ifc][0]]
}

func (m *StaticMesh) NDIM() int     { return m.ndim }
func (m *StaticMesh) Stage() Stage  { return m.stage }
func (m *StaticMesh) Nnode() int    { return m.nnode }
func (m *StaticMesh) Nface() int    { return m.nface }
func (m *StaticMesh) Ncell() int    { return m.ncell }
func (m *StaticMesh) Nbound() int   { return m.nbound }
func (m *StaticMesh) Nbcs() int     { return m.nbcs }
func (m *StaticMesh) Ngstnode() int { return m.ngstnode }
func (m *StaticMesh) Ngstface() int { return m.ngstface }
func (m *StaticMesh) Ngstcell() int { return m.ngstcell }

// Derived arrays. The returned slices belong to the mesh and must be treated
// as read-only; they are replaced by the next build.

func (m *StaticMesh) Fccls() [][FCNCL]int32  { return m.fccls }
func (m *StaticMesh) Fccnd() [][3]float64    { return m.fccnd }
func (m *StaticMesh) Fcnml() [][3]float64    { return m.fcnml }
func (m *StaticMesh) Fcara() []float64       { return m.fcara }
func (m *StaticMesh) Clcnd() [][3]float64    { return m.clcnd }
func (m *StaticMesh) Clvol() []float64       { return m.clvol }
func (m *StaticMesh) Bndfcs() [][BFREL]int32 { return m.bndfcs }

func (m *StaticMesh) advance(s Stage) {
	if s > m.stage {
		m.stage = s
	}
}
