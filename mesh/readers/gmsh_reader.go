package readers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/staticmesh/mesh"
)

// gmshCellTypes maps Gmsh element type numbers to cell types. Higher order
// elements are not supported.
var gmshCellTypes = map[int]mesh.CellType{
	1:  mesh.Line,
	2:  mesh.Triangle,
	3:  mesh.Quadrilateral,
	4:  mesh.Tetrahedron,
	5:  mesh.Hexahedron,
	6:  mesh.Prism,
	7:  mesh.Pyramid,
	15: mesh.Point,
}

type gmshElement struct {
	tpn      mesh.CellType
	physical int
	nodes    []int32
}

/*
ReadGmsh reads an ASCII Gmsh 2.2 mesh. The mesh dimension is the highest
element dimension in the file. Elements of that dimension become cells with
their physical tag as group; elements one dimension lower become boundary
markers named after their physical group. Points and edges of 3-D meshes are
ignored.
*/
func ReadGmsh(r io.Reader) (*mesh.StaticMesh, error) {
	var (
		lr       = newLineReader(r)
		md       meshData
		names    = make(map[int]string) // physical tag -> name
		nodeIdx  = make(map[int]int32)  // node id -> index
		elements []gmshElement
		version  string
	)

	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		var err error
		switch line {
		case "$MeshFormat":
			if line, err = lr.mustNext("MeshFormat"); err != nil {
				return nil, err
			}
			parts := strings.Fields(line)
			if len(parts) < 3 {
				return nil, lr.errorf("invalid MeshFormat line")
			}
			version = parts[0]
			if !strings.HasPrefix(version, "2.") {
				return nil, lr.errorf("unsupported Gmsh format version: %s", version)
			}
			if parts[1] != "0" {
				return nil, lr.errorf("binary Gmsh files are not supported")
			}
		case "$PhysicalNames":
			err = readPhysicalNames(lr, names)
		case "$Nodes":
			err = readGmshNodes(lr, &md, nodeIdx)
		case "$Elements":
			elements, err = readGmshElements(lr, nodeIdx)
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				err = skipSection(lr, "$End"+line[1:])
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := lr.err(); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, lr.errorf("could not find $MeshFormat section")
	}

	for _, el := range elements {
		if d := el.tpn.NDIM(); d > md.ndim {
			md.ndim = d
		}
	}
	if md.ndim < 2 {
		return nil, lr.errorf("no 2-D or 3-D elements in file")
	}
	for _, el := range elements {
		switch el.tpn.NDIM() {
		case md.ndim:
			md.cells = append(md.cells, cellData{tpn: el.tpn, group: int32(el.physical), nodes: el.nodes})
		case md.ndim - 1:
			name, ok := names[el.physical]
			if !ok {
				name = fmt.Sprintf("boundary_%d", el.physical)
			}
			md.markers = append(md.markers, markerData{name: name, nodes: el.nodes})
		}
	}
	return md.build()
}

// readPhysicalNames reads "dim tag \"name\"" lines
func readPhysicalNames(lr *lineReader, names map[int]string) error {
	line, err := lr.mustNext("PhysicalNames")
	if err != nil {
		return err
	}
	num, err := strconv.Atoi(line)
	if err != nil {
		return lr.errorf("invalid physical name count %q", line)
	}
	for i := 0; i < num; i++ {
		if line, err = lr.mustNext("physical names"); err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			return lr.errorf("invalid physical name line: %s", line)
		}
		tag, err := strconv.Atoi(parts[1])
		if err != nil {
			return lr.errorf("invalid physical tag %q", parts[1])
		}
		// Names may contain spaces
		names[tag] = strings.Trim(strings.Join(parts[2:], " "), "\"")
	}
	return skipSection(lr, "$EndPhysicalNames")
}

func readGmshNodes(lr *lineReader, md *meshData, nodeIdx map[int]int32) error {
	line, err := lr.mustNext("Nodes")
	if err != nil {
		return err
	}
	num, err := strconv.Atoi(line)
	if err != nil {
		return lr.errorf("invalid node count %q", line)
	}
	md.coords = make([][]float64, 0, num)
	for i := 0; i < num; i++ {
		if line, err = lr.mustNext("nodes"); err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			return lr.errorf("invalid node line: %s", line)
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return lr.errorf("invalid node id %q", parts[0])
		}
		if _, dup := nodeIdx[id]; dup {
			return lr.errorf("duplicate node id %d", id)
		}
		crd, err := lr.floats(parts[1:], 3)
		if err != nil {
			return err
		}
		nodeIdx[id] = int32(len(md.coords))
		md.coords = append(md.coords, crd)
	}
	return skipSection(lr, "$EndNodes")
}

// readGmshElements reads "id type ntags tags... nodes..." lines
func readGmshElements(lr *lineReader, nodeIdx map[int]int32) (elements []gmshElement, err error) {
	line, err := lr.mustNext("Elements")
	if err != nil {
		return
	}
	num, err := strconv.Atoi(line)
	if err != nil {
		return nil, lr.errorf("invalid element count %q", line)
	}
	for i := 0; i < num; i++ {
		if line, err = lr.mustNext("elements"); err != nil {
			return
		}
		vals, err := lr.ints(strings.Fields(line))
		if err != nil {
			return nil, err
		}
		if len(vals) < 3 || len(vals) < 3+vals[2] {
			return nil, lr.errorf("invalid element line")
		}
		tpn, ok := gmshCellTypes[vals[1]]
		if !ok {
			return nil, lr.errorf("element %d: unsupported element type %d", vals[0], vals[1])
		}
		el := gmshElement{tpn: tpn}
		ntags := vals[2]
		if ntags > 0 {
			el.physical = vals[3]
		}
		ids := vals[3+ntags:]
		if len(ids) != tpn.NumNodes() {
			return nil, lr.errorf("element %d: expected %d nodes, got %d", vals[0], tpn.NumNodes(), len(ids))
		}
		el.nodes = make([]int32, len(ids))
		for j, id := range ids {
			if el.nodes[j], ok = nodeIdx[id]; !ok {
				return nil, lr.errorf("element %d: unknown node %d", vals[0], id)
			}
		}
		elements = append(elements, el)
	}
	err = skipSection(lr, "$EndElements")
	return
}

func skipSection(lr *lineReader, end string) error {
	for {
		line, err := lr.mustNext(end)
		if err != nil {
			return err
		}
		if line == end {
			return nil
		}
	}
}
