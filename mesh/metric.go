package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/staticmesh/types"
)

type metric struct {
	fcnds [][FCMND + 1]int32 // face nodes in owner template order, normals point out of the owner
	fccnd [][3]float64
	fcnml [][3]float64
	fcara []float64
	clcnd [][3]float64
	clvol []float64
}

func vec(p [3]float64) r3.Vec  { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }
func arr(v r3.Vec) [3]float64  { return [3]float64{v.X, v.Y, v.Z} }
func vec2(p [3]float64) r2.Vec { return r2.Vec{X: p[0], Y: p[1]} }

/*
calcMetric computes face and cell geometry:
  - face centroid: mean of the face nodes
  - face normal and area: 2-D uses the edge vector rotated clockwise, (dy, -dx);
    3-D sums the cross products of the triangle fan around the face centroid.
    The area is the magnitude, the stored normal is the unit vector.
  - cell volume and centroid: each face of the cell's template and the node
    mean c of the cell form a sub-simplex with signed volume
    (fccnd - c).n * area / NDIM and centroid c + (fccnd - c) * NDIM/(NDIM+1).
    The signed sub-volumes sum to the oriented cell volume, the cell centroid
    is their volume weighted mean.
  - orientation: template faces point out of a positively oriented cell. A
    face takes its owner's template node order, reversed when the owner's
    oriented volume is negative, so every normal leaves the owner.
*/
func calcMetric(ndim int, ndcrd [][3]float64, cltpn []CellType, clnds [][CLMND + 1]int32,
	fcnds [][FCMND + 1]int32, fccls [][FCNCL]int32) (mt *metric, err error) {
	var (
		nface = len(fcnds)
		ncell = len(clnds)
		dim   = float64(ndim)
		ratio = dim / (dim + 1)
	)
	mt = &metric{
		fcnds: make([][FCMND + 1]int32, nface),
		fccnd: make([][3]float64, nface),
		fcnml: make([][3]float64, nface),
		fcara: make([]float64, nface),
		clcnd: make([][3]float64, ncell),
		clvol: make([]float64, ncell),
	}

	nodeMean := func(row []int32) (c r3.Vec) {
		for _, nd := range row {
			c = r3.Add(c, vec(ndcrd[nd]))
		}
		return r3.Scale(1/float64(len(row)), c)
	}
	// faceGeometry returns the centroid and the area weighted normal
	faceGeometry := func(row []int32) (c, nml r3.Vec) {
		c = nodeMean(row)
		switch ndim {
		case 2:
			d := r2.Sub(vec2(ndcrd[row[1]]), vec2(ndcrd[row[0]]))
			nml = r3.Vec{X: d.Y, Y: -d.X}
		case 3:
			for i := range row {
				a := r3.Sub(vec(ndcrd[row[i]]), c)
				b := r3.Sub(vec(ndcrd[row[(i+1)%len(row)]]), c)
				nml = r3.Add(nml, r3.Cross(a, b))
			}
			nml = r3.Scale(0.5, nml)
		}
		return
	}

	reversed := make([]bool, ncell)
	for icl := 0; icl < ncell; icl++ {
		var (
			nodes = clnds[icl][1 : 1+clnds[icl][0]]
			c     = nodeMean(nodes)
			vol   float64
			acc   r3.Vec
			size  float64
		)
		for _, nd := range nodes {
			size = math.Max(size, r3.Norm(r3.Sub(vec(ndcrd[nd]), c)))
		}
		for _, ft := range cltpn[icl].facets() {
			row := ft.row(nodes)
			fc, nml := faceGeometry(row[1 : 1+row[0]])
			d := r3.Sub(fc, c)
			subvol := r3.Dot(d, nml) / dim
			vol += subvol
			acc = r3.Add(acc, r3.Scale(subvol, r3.Add(c, r3.Scale(ratio, d))))
		}
		if math.Abs(vol) <= volumeTolerance*math.Pow(size, dim) {
			return nil, topologyErrorf("cell", icl, "zero volume %g", vol)
		}
		reversed[icl] = vol < 0
		mt.clvol[icl] = math.Abs(vol)
		mt.clcnd[icl] = arr(r3.Scale(1/vol, acc))
	}

	for ifc := 0; ifc < nface; ifc++ {
		owner := fccls[ifc][0]
		key := types.NewFaceKey(fcnds[ifc][1 : 1+fcnds[ifc][0]])
		row, ok := cellFace(cltpn[owner], clnds[owner], key)
		if !ok {
			return nil, topologyErrorf("face", ifc, "nodes %v are not a face of owner cell %d", key, owner)
		}
		if nb := fccls[ifc][1]; nb != NoCell {
			if _, ok = cellFace(cltpn[nb], clnds[nb], key); !ok {
				return nil, topologyErrorf("face", ifc, "nodes %v are not a face of neighbor cell %d", key, nb)
			}
		}
		if reversed[owner] {
			reverseFaceNodes(&row)
		}
		c, nml := faceGeometry(row[1 : 1+row[0]])
		area := r3.Norm(nml)
		if area <= 0 {
			return nil, topologyErrorf("face", ifc, "zero area")
		}
		mt.fcnds[ifc] = row
		mt.fccnd[ifc] = arr(c)
		mt.fcara[ifc] = area
		mt.fcnml[ifc] = arr(r3.Scale(1/area, nml))
	}
	return
}

// volumeTolerance bounds the volume of a degenerate cell relative to its size
const volumeTolerance = 1e-12

// row maps the template's local node positions onto a cell node list
func (ft faceTemplate) row(cellNodes []int32) (row [FCMND + 1]int32) {
	row[0] = int32(len(ft.nodes))
	for i, local := range ft.nodes {
		row[i+1] = cellNodes[local]
	}
	return
}

// cellFace returns the template face of a cell with the given node set
func cellFace(tpn CellType, clnds [CLMND + 1]int32, key types.FaceKey) (row [FCMND + 1]int32, ok bool) {
	nodes := clnds[1 : 1+clnds[0]]
	for _, ft := range tpn.facets() {
		row = ft.row(nodes)
		if types.NewFaceKey(row[1:1+row[0]]) == key {
			return row, true
		}
	}
	return row, false
}

func reverseFaceNodes(row *[FCMND + 1]int32) {
	nodes := row[1 : 1+row[0]]
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
