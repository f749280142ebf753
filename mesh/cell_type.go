package mesh

// CellType tags the shape of a cell or face. The numbering follows the
// element type ids used by the mesh library the data files are shared with.
type CellType uint8

const (
	NonCellType CellType = iota
	Point
	Line
	Quadrilateral
	Triangle
	Hexahedron
	Tetrahedron
	Prism
	Pyramid
)

type cellTypeInfo struct {
	name   string
	ndim   int
	nnode  int
	nedge  int
	nface  int
	facets []faceTemplate
}

// faceTemplate lists a face by the local node positions of its parent cell.
// Node order is chosen so the right hand normal points out of a positively
// oriented cell (counter-clockwise in 2-D).
type faceTemplate struct {
	tpn   CellType
	nodes []int
}

var cellTypes = [...]cellTypeInfo{
	NonCellType: {name: "NonCellType"},
	Point:       {name: "Point", nnode: 1},
	Line:        {name: "Line", ndim: 1, nnode: 2, nedge: 1},
	Quadrilateral: {name: "Quadrilateral", ndim: 2, nnode: 4, nedge: 4, nface: 4,
		facets: []faceTemplate{
			{Line, []int{0, 1}},
			{Line, []int{1, 2}},
			{Line, []int{2, 3}},
			{Line, []int{3, 0}},
		}},
	Triangle: {name: "Triangle", ndim: 2, nnode: 3, nedge: 3, nface: 3,
		facets: []faceTemplate{
			{Line, []int{0, 1}},
			{Line, []int{1, 2}},
			{Line, []int{2, 0}},
		}},
	Hexahedron: {name: "Hexahedron", ndim: 3, nnode: 8, nedge: 12, nface: 6,
		facets: []faceTemplate{
			{Quadrilateral, []int{0, 3, 2, 1}}, // bottom
			{Quadrilateral, []int{4, 5, 6, 7}}, // top
			{Quadrilateral, []int{0, 1, 5, 4}},
			{Quadrilateral, []int{1, 2, 6, 5}},
			{Quadrilateral, []int{2, 3, 7, 6}},
			{Quadrilateral, []int{3, 0, 4, 7}},
		}},
	Tetrahedron: {name: "Tetrahedron", ndim: 3, nnode: 4, nedge: 6, nface: 4,
		facets: []faceTemplate{
			{Triangle, []int{0, 2, 1}},
			{Triangle, []int{0, 1, 3}},
			{Triangle, []int{1, 2, 3}},
			{Triangle, []int{0, 3, 2}},
		}},
	Prism: {name: "Prism", ndim: 3, nnode: 6, nedge: 9, nface: 5,
		facets: []faceTemplate{
			{Triangle, []int{0, 2, 1}}, // bottom
			{Triangle, []int{3, 4, 5}}, // top
			{Quadrilateral, []int{0, 1, 4, 3}},
			{Quadrilateral, []int{1, 2, 5, 4}},
			{Quadrilateral, []int{2, 0, 3, 5}},
		}},
	Pyramid: {name: "Pyramid", ndim: 3, nnode: 5, nedge: 8, nface: 5,
		facets: []faceTemplate{
			{Quadrilateral, []int{0, 3, 2, 1}}, // base
			{Triangle, []int{0, 1, 4}},
			{Triangle, []int{1, 2, 4}},
			{Triangle, []int{2, 3, 4}},
			{Triangle, []int{3, 0, 4}},
		}},
}

func (ct CellType) info() (ci cellTypeInfo, ok bool) {
	if int(ct) >= len(cellTypes) {
		return
	}
	return cellTypes[ct], true
}

func (ct CellType) String() string {
	if ci, ok := ct.info(); ok {
		return ci.name
	}
	return "Unknown"
}

// NDIM is the spatial dimension of the shape, -1 for unknown tags
func (ct CellType) NDIM() int {
	if ci, ok := ct.info(); ok {
		return ci.ndim
	}
	return -1
}

func (ct CellType) NumNodes() int {
	ci, _ := ct.info()
	return ci.nnode
}

func (ct CellType) NumEdges() int {
	ci, _ := ct.info()
	return ci.nedge
}

func (ct CellType) NumFaces() int {
	ci, _ := ct.info()
	return ci.nface
}

func (ct CellType) facets() []faceTemplate {
	ci, _ := ct.info()
	return ci.facets
}

// FaceTypeForNodes returns the face shape with the given node count
func FaceTypeForNodes(nnode int) CellType {
	switch nnode {
	case 2:
		return Line
	case 3:
		return Triangle
	case 4:
		return Quadrilateral
	default:
		return NonCellType
	}
}
