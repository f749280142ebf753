package geometry2D

import (
	"fmt"
	"math"

	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/staticmesh/mesh"
	"github.com/notargets/staticmesh/types"
)

/*
NewDelaunayMesh triangulates a 2-D point set. Cells are counter-clockwise.
Convex hull edges lying on a side of the points' bounding box get the
bottom, right, top or left marker; other hull edges are left unmarked.
*/
func NewDelaunayMesh(points [][2]float64) (m *mesh.StaticMesh, err error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("triangulation needs at least 3 points, have %d", len(points))
	}
	tris := triangle.Delaunay(points)
	if len(tris) == 0 {
		return nil, fmt.Errorf("no triangles from %d points, are they collinear?", len(points))
	}
	if m, err = mesh.NewStaticMesh(2, len(points), 0, len(tris)); err != nil {
		return
	}
	for i, pt := range points {
		if err = m.SetNode(i, pt[0], pt[1]); err != nil {
			return nil, err
		}
	}

	edgeCount := make(map[types.FaceKey]int)
	for k, tri := range tris {
		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		switch area := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1]); {
		case area == 0:
			return nil, fmt.Errorf("triangle %d is degenerate", k)
		case area < 0:
			tri[1], tri[2] = tri[2], tri[1]
			tris[k] = tri
		}
		if err = m.SetCell(k, mesh.Triangle, 0, tri[0], tri[1], tri[2]); err != nil {
			return nil, err
		}
		for i := 0; i < 3; i++ {
			edgeCount[types.NewFaceKey([]int32{tri[i], tri[(i+1)%3]})]++
		}
	}

	box := NewBoundingBox(points)
	for _, tri := range tris {
		for i := 0; i < 3; i++ {
			n0, n1 := tri[i], tri[(i+1)%3]
			if edgeCount[types.NewFaceKey([]int32{n0, n1})] != 1 {
				continue
			}
			if side := box.Side(points[n0], points[n1], 1e-10); side != "" {
				if _, err = m.AddBoundaryMarker(side, n0, n1); err != nil {
					return nil, err
				}
			}
		}
	}
	return
}

// inCircle is positive when d lies inside the circle through a, b and c,
// for either orientation of a, b, c
func inCircle(ax, ay, bx, by, cx, cy, dx, dy float64) float64 {
	// Calculate handedness, counter-clockwise is (positive) and clockwise is (negative)
	signBit := math.Signbit((bx-ax)*(cy-ay) - (cx-ax)*(by-ay))
	ax_ := ax - dx
	ay_ := ay - dy
	bx_ := bx - dx
	by_ := by - dy
	cx_ := cx - dx
	cy_ := cy - dy
	det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
		(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
		(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
	if signBit {
		return -det
	}
	return det
}

func IsIllegalEdge(prX, prY, piX, piY, pjX, pjY, pkX, pkY float64) bool {
	/*
		pr is a new point for candidate triangle pi-pj-pr
		pi-pj is a shared edge between pi-pj-pk and pi-pj-pr
		if pr lies inside the circle defined by pi-pj-pk:
			- The edge pi-pj should be swapped with pr-pk to make two new triangles:
				pi-pr-pk and pj-pk-pr
	*/
	return inCircle(piX, piY, pjX, pjY, pkX, pkY, prX, prY) > 0
}

// IsDelaunay checks the empty circumcircle property across every interior
// edge of a triangle mesh. Faces must have been built. Points on a
// circumcircle, as in a split square, are accepted.
func IsDelaunay(m *mesh.StaticMesh) bool {
	var (
		fccls = m.Fccls()
		xy    = func(nd int32) (float64, float64) { return m.Ndcrd[nd][0], m.Ndcrd[nd][1] }
	)
	for ifc := range fccls {
		c0, c1 := fccls[ifc][0], fccls[ifc][1]
		if c1 == mesh.NoCell || m.Cltpn[c0] != mesh.Triangle || m.Cltpn[c1] != mesh.Triangle {
			continue
		}
		var opposite int32 = -1
		face := m.FaceNodes(ifc)
		for _, nd := range m.CellNodes(int(c1)) {
			if nd != face[0] && nd != face[1] {
				opposite = nd
			}
		}
		tri := m.CellNodes(int(c0))
		ax, ay := xy(tri[0])
		bx, by := xy(tri[1])
		cx, cy := xy(tri[2])
		dx, dy := xy(opposite)
		// Scale the tolerance with the fourth power of the local size
		h := math.Max(math.Hypot(bx-ax, by-ay), math.Hypot(cx-ax, cy-ay))
		if inCircle(ax, ay, bx, by, cx, cy, dx, dy) > 1e-10*math.Pow(h, 4) {
			return false
		}
	}
	return true
}
