package mesh

import (
	"fmt"
	"sort"
)

// Summary is a plain description of a built mesh, suitable for YAML output
type Summary struct {
	NDIM           int            `json:"ndim"`
	Stage          string         `json:"stage"`
	Nodes          int            `json:"nnode"`
	Faces          int            `json:"nface"`
	Cells          int            `json:"ncell"`
	BoundaryFaces  int            `json:"nbound"`
	BoundaryGroups int            `json:"nbcs"`
	CellTypes      map[string]int `json:"cellTypes"`
	Groups         []GroupSummary `json:"groups,omitempty"`
	TotalVolume    float64        `json:"totalVolume"`
	BoundaryArea   float64        `json:"boundaryArea"`
	Partitions     []int          `json:"partitionSizes,omitempty"`
}

type GroupSummary struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Faces int     `json:"faces"`
	Area  float64 `json:"area"`
}

// TotalVolume is the sum of the cell volumes, zero before a metric build
func (m *StaticMesh) TotalVolume() (vol float64) {
	for _, v := range m.clvol {
		vol += v
	}
	return
}

// BoundaryArea is the summed area of the boundary table's faces
func (m *StaticMesh) BoundaryArea() (area float64) {
	for _, bf := range m.bndfcs {
		area += m.fcara[bf[0]]
	}
	return
}

func (m *StaticMesh) Summary() (s Summary) {
	s = Summary{
		NDIM:           m.ndim,
		Stage:          m.stage.String(),
		Nodes:          m.nnode,
		Faces:          m.nface,
		Cells:          m.ncell,
		BoundaryFaces:  m.nbound,
		BoundaryGroups: m.nbcs,
		CellTypes:      make(map[string]int),
		TotalVolume:    m.TotalVolume(),
		BoundaryArea:   m.BoundaryArea(),
	}
	for _, tpn := range m.Cltpn {
		s.CellTypes[tpn.String()]++
	}
	if m.stage < StageBoundary {
		return
	}
	groups := make([]GroupSummary, len(m.bcGroups))
	for i, g := range m.bcGroups {
		groups[i] = GroupSummary{ID: i, Name: g.Name, Type: g.Type.String()}
	}
	for _, bf := range m.bndfcs {
		g := &groups[bf[1]]
		g.Faces++
		g.Area += m.fcara[bf[0]]
	}
	s.Groups = groups
	return
}

// PrintStatistics prints mesh statistics
func (m *StaticMesh) PrintStatistics() {
	s := m.Summary()
	fmt.Printf("Mesh Statistics (%d-D, stage %s):\n", s.NDIM, s.Stage)
	fmt.Printf("  Nodes: %d\n", s.Nodes)
	fmt.Printf("  Cells: %d\n", s.Cells)
	fmt.Printf("  Faces: %d\n", s.Faces)

	names := make([]string, 0, len(s.CellTypes))
	for name := range s.CellTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("  Cell types:\n")
	for _, name := range names {
		fmt.Printf("    %s: %d\n", name, s.CellTypes[name])
	}

	fmt.Printf("  Boundary faces: %d in %d groups\n", s.BoundaryFaces, s.BoundaryGroups)
	for _, g := range s.Groups {
		fmt.Printf("    [%d] %-16s %-12s faces=%-8d area=%g\n", g.ID, g.Name, g.Type, g.Faces, g.Area)
	}
	if m.stage >= StageInteriorMetric {
		fmt.Printf("  Total volume: %g\n", s.TotalVolume)
		fmt.Printf("  Boundary area: %g\n", s.BoundaryArea)
	}
}
