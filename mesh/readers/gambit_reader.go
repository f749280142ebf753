package readers

import (
	"io"
	"strconv"
	"strings"

	"github.com/notargets/staticmesh/mesh"
)

/*
gambitShape describes a Gambit element type. Gambit numbers brick and pyramid
nodes lexicographically, perm lists the Gambit node for each local node of
the cell type. faces holds the Gambit face numbering used by boundary
condition entries, in Gambit local node positions.
*/
type gambitShape struct {
	tpn   mesh.CellType
	perm  []int
	faces [][]int
}

var gambitShapes = map[int]gambitShape{
	2: {mesh.Quadrilateral, []int{0, 1, 2, 3},
		[][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
	3: {mesh.Triangle, []int{0, 1, 2},
		[][]int{{0, 1}, {1, 2}, {2, 0}}},
	4: {mesh.Hexahedron, []int{0, 1, 3, 2, 4, 5, 7, 6},
		[][]int{{0, 1, 5, 4}, {1, 3, 7, 5}, {3, 2, 6, 7}, {2, 0, 4, 6}, {0, 2, 3, 1}, {4, 5, 7, 6}}},
	5: {mesh.Prism, []int{0, 1, 2, 3, 4, 5},
		[][]int{{0, 1, 4, 3}, {1, 2, 5, 4}, {2, 0, 3, 5}, {0, 2, 1}, {3, 4, 5}}},
	6: {mesh.Tetrahedron, []int{0, 1, 2, 3},
		[][]int{{1, 0, 2}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}}},
	7: {mesh.Pyramid, []int{0, 1, 3, 2, 4},
		[][]int{{0, 2, 3, 1}, {0, 1, 4}, {1, 3, 4}, {3, 2, 4}, {2, 0, 4}}},
}

type gambitElement struct {
	shape gambitShape
	nodes []int32 // Gambit order, 0-based
}

// ReadGambitNeutral reads a Gambit neutral file (.neu). Element groups set
// the cell groups; element/face boundary conditions become boundary markers
// named after the condition.
func ReadGambitNeutral(r io.Reader) (*mesh.StaticMesh, error) {
	var (
		lr                         = newLineReader(r)
		md                         meshData
		numnp, nelem, ngrps, nbset int
		haveHeader                 bool
		groupsRead, bcsRead        int
		elements                   = make(map[int]int) // element id -> cell index
		raw                        []gambitElement
	)

	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		switch {
		case line == "" || line == "ENDOFSECTION":

		case strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM"):
			line, err := lr.mustNext("control info")
			if err != nil {
				return nil, err
			}
			vals, err := lr.ints(strings.Fields(line))
			if err != nil {
				return nil, err
			}
			if len(vals) < 5 {
				return nil, lr.errorf("control info needs NUMNP NELEM NGRPS NBSETS NDFCD")
			}
			numnp, nelem, ngrps, nbset, md.ndim = vals[0], vals[1], vals[2], vals[3], vals[4]
			if md.ndim != 2 && md.ndim != 3 {
				return nil, lr.errorf("unsupported dimension: NDFCD=%d", md.ndim)
			}
			haveHeader = true

		case !haveHeader:
			// Title and program lines before the control info

		case strings.Contains(line, "NODAL COORDINATES"):
			md.coords = make([][]float64, numnp)
			for i := 0; i < numnp; i++ {
				line, err := lr.mustNext("nodes")
				if err != nil {
					return nil, err
				}
				fields := strings.Fields(line)
				if len(fields) < 1+md.ndim {
					return nil, lr.errorf("invalid node line")
				}
				id, err := strconv.Atoi(fields[0])
				if err != nil || id < 1 || id > numnp {
					return nil, lr.errorf("node id %s out of range [1,%d]", fields[0], numnp)
				}
				// Gambit uses 1-based node IDs
				if md.coords[id-1], err = lr.floats(fields[1:], md.ndim); err != nil {
					return nil, err
				}
			}

		case strings.Contains(line, "ELEMENTS/CELLS"):
			for i := 0; i < nelem; i++ {
				id, gtype, nodes, err := readGambitElement(lr)
				if err != nil {
					return nil, err
				}
				shape, ok := gambitShapes[gtype]
				if !ok {
					// Edges and other non-cell elements
					continue
				}
				if len(nodes) != len(shape.perm) {
					return nil, lr.errorf("element %d: %v expects %d nodes, got %d",
						id, shape.tpn, len(shape.perm), len(nodes))
				}
				cell := cellData{tpn: shape.tpn, nodes: make([]int32, len(nodes))}
				for j, g := range shape.perm {
					cell.nodes[j] = nodes[g]
				}
				elements[id] = len(md.cells)
				md.cells = append(md.cells, cell)
				raw = append(raw, gambitElement{shape: shape, nodes: nodes})
			}

		case strings.Contains(line, "ELEMENT GROUP"):
			if err := readGambitGroup(lr, md.cells, elements); err != nil {
				return nil, err
			}
			groupsRead++

		case strings.Contains(line, "BOUNDARY CONDITIONS"):
			if err := readGambitBC(lr, &md, raw, elements); err != nil {
				return nil, err
			}
			bcsRead++
		}
	}
	if err := lr.err(); err != nil {
		return nil, err
	}
	if !haveHeader {
		return nil, lr.errorf("missing control info section")
	}
	if groupsRead != ngrps || bcsRead != nbset {
		return nil, lr.errorf("expected %d element groups and %d boundary sets, read %d and %d",
			ngrps, nbset, groupsRead, bcsRead)
	}
	return md.build()
}

// readGambitElement reads "id type nnode n1 n2 ..." where the node list may
// continue on following lines
func readGambitElement(lr *lineReader) (id, gtype int, nodes []int32, err error) {
	line, err := lr.mustNext("elements")
	if err != nil {
		return
	}
	vals, err := lr.ints(strings.Fields(line))
	if err != nil {
		return
	}
	if len(vals) < 3 {
		return 0, 0, nil, lr.errorf("invalid element line")
	}
	id, gtype, nnode := vals[0], vals[1], vals[2]
	vals = vals[3:]
	for len(vals) < nnode {
		if line, err = lr.mustNext("element nodes"); err != nil {
			return
		}
		more, err := lr.ints(strings.Fields(line))
		if err != nil {
			return 0, 0, nil, err
		}
		vals = append(vals, more...)
	}
	nodes = make([]int32, nnode)
	for i := range nodes {
		nodes[i] = int32(vals[i] - 1)
	}
	return
}

// readGambitGroup reads one element group and stores its id as the cell group
func readGambitGroup(lr *lineReader, cells []cellData, elements map[int]int) (err error) {
	line, err := lr.mustNext("group header")
	if err != nil {
		return
	}
	var groupID, numElems, nflags int
	parts := strings.Fields(line)
	for i := 0; i < len(parts)-1; i++ {
		switch parts[i] {
		case "GROUP:":
			groupID, err = strconv.Atoi(parts[i+1])
		case "ELEMENTS:":
			numElems, err = strconv.Atoi(parts[i+1])
		case "NFLAGS:":
			nflags, err = strconv.Atoi(parts[i+1])
		}
		if err != nil {
			return lr.errorf("invalid group header: %s", line)
		}
	}
	// Entity name, then the solver flags
	if _, err = lr.mustNext("group name"); err != nil {
		return
	}
	if nflags > 0 {
		if _, err = lr.mustNext("group flags"); err != nil {
			return
		}
	}
	for read := 0; read < numElems; {
		if line, err = lr.mustNext("group elements"); err != nil {
			return
		}
		ids, err := lr.ints(strings.Fields(line))
		if err != nil {
			return err
		}
		for _, id := range ids {
			if icl, ok := elements[id]; ok {
				cells[icl].group = int32(groupID)
			}
		}
		read += len(ids)
	}
	return
}

// readGambitBC reads one boundary condition set. Element sets list
// (element, type, face) entries; node sets are skipped.
func readGambitBC(lr *lineReader, md *meshData, raw []gambitElement, elements map[int]int) (err error) {
	line, err := lr.mustNext("boundary condition header")
	if err != nil {
		return
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return lr.errorf("invalid boundary condition header: %s", line)
	}
	name := fields[0]
	hdr, err := lr.ints(fields[1:3])
	if err != nil {
		return
	}
	itype, nentry := hdr[0], hdr[1]
	for i := 0; i < nentry; i++ {
		if line, err = lr.mustNext("boundary condition entries"); err != nil {
			return
		}
		if itype != 1 {
			continue
		}
		vals, err := lr.ints(strings.Fields(line))
		if err != nil {
			return err
		}
		if len(vals) < 3 {
			return lr.errorf("boundary entry needs element, type and face")
		}
		icl, ok := elements[vals[0]]
		if !ok {
			return lr.errorf("boundary entry references unknown element %d", vals[0])
		}
		el := raw[icl]
		face := vals[2]
		if face < 1 || face > len(el.shape.faces) {
			return lr.errorf("element %d has no face %d", vals[0], face)
		}
		local := el.shape.faces[face-1]
		nodes := make([]int32, len(local))
		for j, g := range local {
			nodes[j] = el.nodes[g]
		}
		md.markers = append(md.markers, markerData{name: name, nodes: nodes})
	}
	return
}
