package geometry2D

import (
	"fmt"

	"github.com/notargets/staticmesh/mesh"
)

// Boundary marker names of generated meshes
const (
	SideBottom = "bottom"
	SideRight  = "right"
	SideTop    = "top"
	SideLeft   = "left"
)

/*
NewRectangleMesh builds a structured nx by ny mesh of [xmin,xmax]x[ymin,ymax].
Each rectangle is one quadrilateral, or two counter-clockwise triangles split
along the diagonal from its lower left corner when triangles is set. Node
(i, j) has index i + (nx+1)*j. The four sides carry boundary markers named
bottom, right, top and left.
*/
func NewRectangleMesh(nx, ny int, xmin, xmax, ymin, ymax float64, triangles bool) (m *mesh.StaticMesh, err error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("rectangle mesh needs at least one cell per direction, have %d x %d", nx, ny)
	}
	if !(xmax > xmin) || !(ymax > ymin) {
		return nil, fmt.Errorf("empty rectangle [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}
	var (
		ncell = nx * ny
		dx    = (xmax - xmin) / float64(nx)
		dy    = (ymax - ymin) / float64(ny)
		id    = func(i, j int) int32 { return int32(i + (nx+1)*j) }
	)
	if triangles {
		ncell *= 2
	}
	if m, err = mesh.NewStaticMesh(2, (nx+1)*(ny+1), 0, ncell); err != nil {
		return
	}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			if err = m.SetNode(int(id(i, j)), xmin+float64(i)*dx, ymin+float64(j)*dy); err != nil {
				return nil, err
			}
		}
	}
	var icl int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0, n1, n2, n3 := id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)
			if triangles {
				if err = m.SetCell(icl, mesh.Triangle, 0, n0, n1, n2); err != nil {
					return nil, err
				}
				if err = m.SetCell(icl+1, mesh.Triangle, 0, n0, n2, n3); err != nil {
					return nil, err
				}
				icl += 2
			} else {
				if err = m.SetCell(icl, mesh.Quadrilateral, 0, n0, n1, n2, n3); err != nil {
					return nil, err
				}
				icl++
			}
		}
	}

	type marker struct {
		name   string
		n0, n1 int32
	}
	var markers []marker
	for i := 0; i < nx; i++ {
		markers = append(markers, marker{SideBottom, id(i, 0), id(i+1, 0)})
	}
	for j := 0; j < ny; j++ {
		markers = append(markers, marker{SideRight, id(nx, j), id(nx, j+1)})
	}
	for i := nx; i > 0; i-- {
		markers = append(markers, marker{SideTop, id(i, ny), id(i-1, ny)})
	}
	for j := ny; j > 0; j-- {
		markers = append(markers, marker{SideLeft, id(0, j), id(0, j-1)})
	}
	for _, mk := range markers {
		if _, err = m.AddBoundaryMarker(mk.name, mk.n0, mk.n1); err != nil {
			return nil, err
		}
	}
	return
}
