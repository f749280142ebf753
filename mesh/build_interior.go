package mesh

import (
	"github.com/notargets/staticmesh/types"
)

/*
BuildInterior derives the interior data of the mesh from the cell
connectivity.

Faces are enumerated from the cell node lists when the mesh was constructed
without faces: every cell contributes the faces of its type's template, faces
are deduplicated by their sorted node signature, and new faces take the next
index in discovery order (cells in index order, faces in template order). The
first cell to reference a face owns it (Fccls slot 0); the second becomes its
neighbor (slot 1). Faces referenced by a single cell keep NoCell in slot 1.

With doMetric the face centroids, unit normals and areas and the cell
centroids and volumes are computed. Orientation is decided per cell by the
sign of its volume over its template faces: a face takes its owner's template
node order, reversed when the owner is negatively oriented, so every normal
points out of the owner, concave cells included. Without doMetric the metric
arrays are left as they are, which is all zeros until a metric build has run.

Calling BuildInterior again never duplicates faces. Nothing is committed
unless the whole build succeeds.
*/
func (m *StaticMesh) BuildInterior(doMetric bool) (err error) {
	var (
		fctpn []CellType
		fcnds [][FCMND + 1]int32
		fccls [][FCNCL]int32
		clfcs [][CLMFC + 1]int32
	)
	if err = m.checkCells(); err != nil {
		return
	}
	switch {
	case m.stage >= StageInteriorTopology:
		fctpn, fcnds, fccls, clfcs = m.Fctpn, m.Fcnds, m.fccls, m.Clfcs
	case m.nface > 0:
		if fctpn, fccls, err = m.connectSuppliedFaces(); err != nil {
			return
		}
		fcnds, clfcs = m.Fcnds, m.Clfcs
	default:
		if fctpn, fcnds, fccls, clfcs, err = m.enumerateFaces(); err != nil {
			return
		}
	}

	var mt *metric
	if doMetric {
		if mt, err = calcMetric(m.ndim, m.Ndcrd, m.Cltpn, m.Clnds, fcnds, fccls); err != nil {
			return
		}
	}

	if len(fcnds) != m.nface || m.stage == StageConstructed {
		m.allocFaces(len(fcnds))
		m.nface = len(fcnds)
	}
	m.Fctpn, m.Fcnds, m.fccls, m.Clfcs = fctpn, fcnds, fccls, clfcs
	m.advance(StageInteriorTopology)
	if mt != nil {
		m.Fcnds = mt.fcnds
		m.fccnd, m.fcnml, m.fcara = mt.fccnd, mt.fcnml, mt.fcara
		m.clcnd, m.clvol = mt.clcnd, mt.clvol
		m.advance(StageInteriorMetric)
	}
	return
}

func (m *StaticMesh) checkCells() (err error) {
	for icl := 0; icl < m.ncell; icl++ {
		if err = m.checkCellType(icl, m.Cltpn[icl], int(m.Clnds[icl][0])); err != nil {
			return
		}
		for _, nd := range m.CellNodes(icl) {
			if nd < 0 || int(nd) >= m.nnode {
				return topologyErrorf("cell", icl, "node %d out of range [0,%d)", nd, m.nnode)
			}
		}
	}
	return
}

// enumerateFaces builds the unique face list from the cell node lists
func (m *StaticMesh) enumerateFaces() (fctpn []CellType, fcnds [][FCMND + 1]int32,
	fccls [][FCNCL]int32, clfcs [][CLMFC + 1]int32, err error) {
	var (
		faceMap = make(map[types.FaceKey]int32, m.ncell*2)
	)
	clfcs = make([][CLMFC + 1]int32, m.ncell)
	for icl := 0; icl < m.ncell; icl++ {
		cellNodes := m.CellNodes(icl)
		for _, ft := range m.Cltpn[icl].facets() {
			row := ft.row(cellNodes)
			key := types.NewFaceKey(row[1 : 1+row[0]])
			ifc, exists := faceMap[key]
			if exists {
				switch {
				case fccls[ifc][0] == int32(icl):
					return nil, nil, nil, nil, topologyErrorf("cell", icl,
						"face %v appears twice in the cell", key)
				case fccls[ifc][1] != NoCell:
					return nil, nil, nil, nil, topologyErrorf("face", int(ifc),
						"face %v is shared by more than two cells (%d, %d, %d)",
						key, fccls[ifc][0], fccls[ifc][1], icl)
				}
				fccls[ifc][1] = int32(icl)
			} else {
				ifc = int32(len(fcnds))
				faceMap[key] = ifc
				fctpn = append(fctpn, ft.tpn)
				fcnds = append(fcnds, row)
				fccls = append(fccls, [FCNCL]int32{int32(icl), NoCell})
			}
			clfcs[icl][0]++
			clfcs[icl][clfcs[icl][0]] = ifc
		}
	}
	if fcnds == nil {
		fctpn = make([]CellType, 0)
		fcnds = make([][FCMND + 1]int32, 0)
		fccls = make([][FCNCL]int32, 0)
	}
	return
}

// connectSuppliedFaces validates caller supplied faces and derives the face
// owners from Clfcs.
func (m *StaticMesh) connectSuppliedFaces() (fctpn []CellType, fccls [][FCNCL]int32, err error) {
	fctpn = make([]CellType, m.nface)
	fccls = make([][FCNCL]int32, m.nface)
	for ifc := 0; ifc < m.nface; ifc++ {
		nnd := int(m.Fcnds[ifc][0])
		tpn := m.Fctpn[ifc]
		if tpn == NonCellType {
			tpn = FaceTypeForNodes(nnd)
		}
		if tpn.NDIM() != m.ndim-1 || tpn.NumNodes() != nnd {
			return nil, nil, topologyErrorf("face", ifc, "%d nodes do not form a face of a %d-D mesh",
				nnd, m.ndim)
		}
		for _, nd := range m.FaceNodes(ifc) {
			if nd < 0 || int(nd) >= m.nnode {
				return nil, nil, topologyErrorf("face", ifc, "node %d out of range [0,%d)", nd, m.nnode)
			}
		}
		fctpn[ifc] = tpn
		fccls[ifc] = [FCNCL]int32{NoCell, NoCell}
	}
	for icl := 0; icl < m.ncell; icl++ {
		nfc := int(m.Clfcs[icl][0])
		if nfc < 1 || nfc > CLMFC {
			return nil, nil, topologyErrorf("cell", icl, "face count %d out of range [1,%d]", nfc, CLMFC)
		}
		for _, ifc := range m.CellFaces(icl) {
			switch {
			case ifc < 0 || int(ifc) >= m.nface:
				return nil, nil, topologyErrorf("cell", icl, "face %d out of range [0,%d)", ifc, m.nface)
			case fccls[ifc][0] == NoCell:
				fccls[ifc][0] = int32(icl)
			case fccls[ifc][1] == NoCell && fccls[ifc][0] != int32(icl):
				fccls[ifc][1] = int32(icl)
			default:
				return nil, nil, topologyErrorf("face", int(ifc), "referenced by too many cells")
			}
		}
	}
	for ifc := 0; ifc < m.nface; ifc++ {
		if fccls[ifc][0] == NoCell {
			return nil, nil, topologyErrorf("face", ifc, "not referenced by any cell")
		}
	}
	return
}
