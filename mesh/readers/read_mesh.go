package readers

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/staticmesh/mesh"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string, verbose bool) (m *mesh.StaticMesh, err error) {
	var (
		ext  = strings.ToLower(filepath.Ext(filename))
		read func(io.Reader) (*mesh.StaticMesh, error)
	)
	switch ext {
	case ".neu":
		read = ReadGambitNeutral
	case ".msh":
		read = ReadGmsh
	case ".su2":
		read = ReadSU2
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if verbose {
		log.Printf("Reading mesh file %s", filename)
	}
	if m, err = read(file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if verbose {
		log.Printf("Read %d-D mesh: %d nodes, %d cells, %d boundary groups",
			m.NDIM(), m.Nnode(), m.Ncell(), len(m.BoundaryGroups()))
	}
	return
}
