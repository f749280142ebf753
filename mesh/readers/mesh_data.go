package readers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/staticmesh/mesh"
)

// lineReader scans a text mesh file and keeps the line number for errors
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &lineReader{scanner: scanner}
}

// next returns the next line with surrounding space removed
func (lr *lineReader) next() (string, bool) {
	if !lr.scanner.Scan() {
		return "", false
	}
	lr.line++
	return strings.TrimSpace(lr.scanner.Text()), true
}

// mustNext is next with an error naming what was expected at EOF
func (lr *lineReader) mustNext(what string) (string, error) {
	line, ok := lr.next()
	if !ok {
		if err := lr.scanner.Err(); err != nil {
			return "", fmt.Errorf("line %d: %w", lr.line, err)
		}
		return "", lr.errorf("unexpected EOF reading %s", what)
	}
	return line, nil
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", lr.line, fmt.Sprintf(format, args...))
}

func (lr *lineReader) err() error {
	if err := lr.scanner.Err(); err != nil {
		return fmt.Errorf("line %d: %w", lr.line, err)
	}
	return nil
}

// ints parses every field as an integer
func (lr *lineReader) ints(fields []string) (vals []int, err error) {
	vals = make([]int, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.Atoi(f); err != nil {
			return nil, lr.errorf("invalid integer %q", f)
		}
	}
	return
}

// floats parses the first n fields as floating point values
func (lr *lineReader) floats(fields []string, n int) (vals []float64, err error) {
	if len(fields) < n {
		return nil, lr.errorf("expected %d values, got %d", n, len(fields))
	}
	vals = make([]float64, n)
	for i := 0; i < n; i++ {
		if vals[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
			return nil, lr.errorf("invalid coordinate %q", fields[i])
		}
	}
	return
}

type cellData struct {
	tpn   mesh.CellType
	group int32
	nodes []int32
}

type markerData struct {
	name  string
	nodes []int32
}

// meshData collects a file's contents before the mesh sizes are known
type meshData struct {
	ndim    int
	coords  [][]float64
	cells   []cellData
	markers []markerData
}

// build creates the StaticMesh with the collected nodes, cells and markers
func (md *meshData) build() (m *mesh.StaticMesh, err error) {
	if m, err = mesh.NewStaticMesh(md.ndim, len(md.coords), 0, len(md.cells)); err != nil {
		return nil, err
	}
	for i, crd := range md.coords {
		if err = m.SetNode(i, crd[:md.ndim]...); err != nil {
			return nil, err
		}
	}
	for i, c := range md.cells {
		if err = m.SetCell(i, c.tpn, c.group, c.nodes...); err != nil {
			return nil, err
		}
	}
	for _, mk := range md.markers {
		if _, err = m.AddBoundaryMarker(mk.name, mk.nodes...); err != nil {
			return nil, err
		}
	}
	return
}
