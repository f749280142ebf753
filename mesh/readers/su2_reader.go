package readers

import (
	"io"
	"strconv"
	"strings"

	"github.com/notargets/staticmesh/mesh"
)

// su2CellTypes maps SU2/VTK element type identifiers to cell types
var su2CellTypes = map[int]mesh.CellType{
	3:  mesh.Line,          // VTK_LINE
	5:  mesh.Triangle,      // VTK_TRIANGLE
	9:  mesh.Quadrilateral, // VTK_QUAD
	10: mesh.Tetrahedron,   // VTK_TETRA
	12: mesh.Hexahedron,    // VTK_HEXAHEDRON
	13: mesh.Prism,         // VTK_WEDGE
	14: mesh.Pyramid,       // VTK_PYRAMID
}

// su2Value returns the value of a "KEY= value" line
func su2Value(line, key string) (string, bool) {
	if !strings.HasPrefix(line, key+"=") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, key+"=")), true
}

// su2Line strips a % comment from a line
func su2Line(line string) string {
	if idx := strings.Index(line, "%"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line
}

// ReadSU2 reads an SU2 native format mesh. Sections may appear in any order
// after NDIME; cells go to group 0 and every marker becomes a named boundary
// group.
func ReadSU2(r io.Reader) (*mesh.StaticMesh, error) {
	var (
		lr                 = newLineReader(r)
		md                 meshData
		hasNDIME, hasNPOIN bool
	)
	count := func(val string) (int, error) {
		fields := strings.Fields(val)
		if len(fields) == 0 {
			return 0, lr.errorf("missing count")
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 0 {
			return 0, lr.errorf("invalid count %q", val)
		}
		return n, nil
	}
	nextData := func(what string) (fields []string, err error) {
		for {
			var line string
			if line, err = lr.mustNext(what); err != nil {
				return
			}
			if line = su2Line(line); line != "" {
				return strings.Fields(line), nil
			}
		}
	}

	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		if line = su2Line(line); line == "" {
			continue
		}
		if val, ok := su2Value(line, "NDIME"); ok {
			n, err := count(val)
			if err != nil {
				return nil, err
			}
			if n != 2 && n != 3 {
				return nil, lr.errorf("unsupported dimension: NDIME=%d", n)
			}
			md.ndim, hasNDIME = n, true

		} else if val, ok := su2Value(line, "NPOIN"); ok {
			if !hasNDIME {
				return nil, lr.errorf("NPOIN before NDIME")
			}
			npoin, err := count(val)
			if err != nil {
				return nil, err
			}
			md.coords = make([][]float64, npoin)
			for i := 0; i < npoin; i++ {
				fields, err := nextData("nodes")
				if err != nil {
					return nil, err
				}
				// A trailing node index may follow the coordinates
				if md.coords[i], err = lr.floats(fields, md.ndim); err != nil {
					return nil, err
				}
			}
			hasNPOIN = true

		} else if val, ok := su2Value(line, "NELEM"); ok {
			if !hasNDIME {
				return nil, lr.errorf("NELEM before NDIME")
			}
			nelem, err := count(val)
			if err != nil {
				return nil, err
			}
			md.cells = make([]cellData, 0, nelem)
			for i := 0; i < nelem; i++ {
				fields, err := nextData("elements")
				if err != nil {
					return nil, err
				}
				tpn, nodes, err := su2Element(lr, fields)
				if err != nil {
					return nil, err
				}
				md.cells = append(md.cells, cellData{tpn: tpn, nodes: nodes})
			}

		} else if val, ok := su2Value(line, "NMARK"); ok {
			nmark, err := count(val)
			if err != nil {
				return nil, err
			}
			for i := 0; i < nmark; i++ {
				fields, err := nextData("marker tag")
				if err != nil {
					return nil, err
				}
				tag, ok := su2Value(strings.Join(fields, " "), "MARKER_TAG")
				if !ok {
					return nil, lr.errorf("expected MARKER_TAG=, got: %s", strings.Join(fields, " "))
				}
				if fields, err = nextData("marker elements"); err != nil {
					return nil, err
				}
				val, ok := su2Value(strings.Join(fields, " "), "MARKER_ELEMS")
				if !ok {
					return nil, lr.errorf("expected MARKER_ELEMS= for marker %s", tag)
				}
				nelem, err := count(val)
				if err != nil {
					return nil, err
				}
				for j := 0; j < nelem; j++ {
					if fields, err = nextData("boundary elements"); err != nil {
						return nil, err
					}
					_, nodes, err := su2Element(lr, fields)
					if err != nil {
						return nil, err
					}
					md.markers = append(md.markers, markerData{name: tag, nodes: nodes})
				}
			}
		}
	}
	if err := lr.err(); err != nil {
		return nil, err
	}

	if !hasNDIME {
		return nil, lr.errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, lr.errorf("missing required NPOIN= section")
	}
	return md.build()
}

// su2Element parses "type n0 n1 ... [index]"
func su2Element(lr *lineReader, fields []string) (tpn mesh.CellType, nodes []int32, err error) {
	vals, err := lr.ints(fields)
	if err != nil {
		return
	}
	var ok bool
	if tpn, ok = su2CellTypes[vals[0]]; !ok {
		return 0, nil, lr.errorf("unknown element type: %d", vals[0])
	}
	nnode := tpn.NumNodes()
	if len(vals) < nnode+1 {
		return 0, nil, lr.errorf("element type %v expects %d nodes, got %d", tpn, nnode, len(vals)-1)
	}
	nodes = make([]int32, nnode)
	for i := range nodes {
		nodes[i] = int32(vals[1+i])
	}
	return
}
