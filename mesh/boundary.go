package mesh

import (
	"fmt"

	"github.com/notargets/staticmesh/types"
)

// BoundaryGroup is a named boundary condition group. Its index in
// BoundaryGroups is the group id stored in the boundary table.
type BoundaryGroup struct {
	Name string
	Type types.BCType
}

const (
	defaultGroupName     = "default"
	unspecifiedGroupName = "unspecified"
)

// AddBoundaryMarker assigns the face with the given nodes to the named
// boundary group, creating the group on first use. Mesh readers call it for
// every marker element. The returned id is the group's index. A marker added
// after BuildBoundary rebuilds the boundary table.
func (m *StaticMesh) AddBoundaryMarker(name string, nodes ...int32) (group int32, err error) {
	if len(nodes) < 2 || len(nodes) > FCMND {
		return 0, topologyErrorf("marker", len(m.markers), "%q has %d nodes, a face has 2 to %d",
			name, len(nodes), FCMND)
	}
	if (len(nodes) > 2) != (m.ndim == 3) {
		return 0, &DimensionMismatchError{What: fmt.Sprintf("marker %q", name), Want: m.ndim, Got: len(nodes) - 1}
	}
	for _, nd := range nodes {
		if nd < 0 || int(nd) >= m.nnode {
			return 0, topologyErrorf("marker", len(m.markers), "%q node %d out of range [0,%d)",
				name, nd, m.nnode)
		}
	}
	group = m.boundaryGroup(name)
	m.markers[types.NewFaceKey(nodes)] = group
	if m.stage >= StageBoundary {
		// The group table changed under the built boundary table
		err = m.BuildBoundary()
	}
	return
}

func (m *StaticMesh) boundaryGroup(name string) int32 {
	tag := types.NewBCTAG(name)
	for i := 0; i < m.nnamed; i++ {
		if types.NewBCTAG(m.bcGroups[i].Name) == tag {
			return int32(i)
		}
	}
	// Named groups precede the unspecified group, drop it until the next build
	m.bcGroups = append(m.bcGroups[:m.nnamed], BoundaryGroup{Name: name, Type: tag.GetType()})
	m.nnamed++
	return int32(m.nnamed - 1)
}

// SetBoundaryType overrides the boundary condition type of a named group
func (m *StaticMesh) SetBoundaryType(name string, bc types.BCType) error {
	tag := types.NewBCTAG(name)
	for i := range m.bcGroups {
		if types.NewBCTAG(m.bcGroups[i].Name) == tag {
			m.bcGroups[i].Type = bc
			return nil
		}
	}
	return fmt.Errorf("no boundary group named %q", name)
}

// BoundaryGroups returns the boundary groups indexed by group id
func (m *StaticMesh) BoundaryGroups() []BoundaryGroup {
	return m.bcGroups
}

/*
BuildBoundary collects every face without a second owning cell, in face index
order, into the boundary table. Each row is [face, group, NoCell].

Without boundary markers every boundary face belongs to group 0. With markers
a face takes the group of the marker with the same node set, and faces no
marker covers go to an "unspecified" group appended after the named groups.
Nbcs is the number of distinct groups the boundary faces use.
*/
func (m *StaticMesh) BuildBoundary() error {
	if m.stage < StageInteriorTopology {
		return &PreconditionError{Op: "BuildBoundary", Reason: "faces are not built, call BuildInterior first"}
	}
	var (
		bndfcs      = make([][BFREL]int32, 0)
		used        = make(map[int32]bool)
		unspecified = int32(m.nnamed)
		groups      = m.bcGroups[:m.nnamed:m.nnamed]
	)
	for ifc := 0; ifc < m.nface; ifc++ {
		if m.fccls[ifc][1] != NoCell {
			continue
		}
		var group int32
		if len(m.markers) > 0 {
			var ok bool
			if group, ok = m.markers[types.NewFaceKey(m.FaceNodes(ifc))]; !ok {
				group = unspecified
			}
		}
		used[group] = true
		bndfcs = append(bndfcs, [BFREL]int32{int32(ifc), group, NoCell})
	}
	switch {
	case len(m.markers) == 0 && len(bndfcs) > 0:
		groups = []BoundaryGroup{{Name: defaultGroupName, Type: types.BCNone}}
	case used[unspecified] && len(m.markers) > 0:
		groups = append(groups, BoundaryGroup{Name: unspecifiedGroupName, Type: types.BCNone})
	}

	m.bndfcs = bndfcs
	m.nbound = len(bndfcs)
	m.nbcs = len(used)
	m.bcGroups = groups
	m.advance(StageBoundary)
	return nil
}
