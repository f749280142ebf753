package mesh

import (
	"fmt"
	"log"
	"math"

	metis "github.com/notargets/go-metis"
)

// PartitionConfig holds configuration for mesh partitioning
type PartitionConfig struct {
	NumPartitions    int32
	ImbalanceFactor  float32 // e.g., 1.05 for 5% imbalance
	UseEdgeWeights   bool
	UseVertexWeights bool
	Objective        string // "cut" or "vol"
	Verbose          bool
}

// DefaultPartitionConfig returns default partitioning configuration
func DefaultPartitionConfig(nparts int32) *PartitionConfig {
	return &PartitionConfig{
		NumPartitions:    nparts,
		ImbalanceFactor:  1.05,
		UseEdgeWeights:   true,
		UseVertexWeights: true,
		Objective:        "vol", // minimize communication volume
	}
}

// Partitioner splits the cells of a mesh into load balanced parts with METIS
type Partitioner struct {
	mesh   *StaticMesh
	config *PartitionConfig

	// Cost models
	computeCost func(tpn CellType) int32
}

// PartitionStats holds statistics for a single partition
type PartitionStats struct {
	ID          int
	NumCells    int
	ComputeLoad int64
	CellTypes   map[CellType]int
	Neighbors   map[int]int // neighbor partition -> shared faces
}

func NewPartitioner(m *StaticMesh, config *PartitionConfig) *Partitioner {
	return &Partitioner{
		mesh:   m,
		config: config,
		// Relative cost tracks the node count of the cell
		computeCost: func(tpn CellType) int32 {
			if n := tpn.NumNodes(); n > 0 {
				return int32(n)
			}
			return 1
		},
	}
}

// Partition returns the part of every cell. A single part needs no graph
// partitioning and puts every cell in part 0.
func (mp *Partitioner) Partition() (part []int32, err error) {
	var (
		m      = mp.mesh
		nparts = mp.config.NumPartitions
	)
	if m.Stage() < StageInteriorTopology {
		return nil, &PreconditionError{Op: "Partition", Reason: "faces are not built, call BuildInterior first"}
	}
	switch {
	case nparts < 1:
		return nil, fmt.Errorf("number of partitions must be positive, have %d", nparts)
	case int(nparts) > m.Ncell():
		return nil, fmt.Errorf("cannot split %d cells into %d partitions", m.Ncell(), nparts)
	case nparts == 1:
		part = make([]int32, m.Ncell())
		mp.analyze(part, 0)
		return
	}
	if mp.config.Verbose {
		log.Printf("Partitioning mesh with %d cells into %d parts", m.Ncell(), nparts)
	}

	xadj, adjncy, adjwgt, err := m.adjacency()
	if err != nil {
		return nil, err
	}

	opts := make([]int32, metis.NoOptions)
	if err = metis.SetDefaultOptions(opts); err != nil {
		return nil, fmt.Errorf("failed to set METIS options: %w", err)
	}
	if mp.config.Objective == "vol" {
		opts[metis.OptionObjType] = metis.ObjTypeVol
	} else {
		opts[metis.OptionObjType] = metis.ObjTypeCut
	}
	ubvec := []float32{mp.config.ImbalanceFactor}

	var vwgt []int32
	if mp.config.UseVertexWeights {
		vwgt = make([]int32, m.Ncell())
		for icl := range vwgt {
			vwgt[icl] = mp.computeCost(m.Cltpn[icl])
		}
	}
	if !mp.config.UseEdgeWeights {
		adjwgt = nil
	}

	part, objval, err := metis.PartGraphKwayWeighted(
		xadj, adjncy, vwgt, adjwgt,
		nparts, nil, ubvec, opts,
	)
	if err != nil {
		return nil, fmt.Errorf("METIS partitioning failed: %w", err)
	}
	mp.analyze(part, objval)
	return
}

// Stats computes per partition statistics for a partition vector
func (mp *Partitioner) Stats(part []int32) (stats []PartitionStats, cutFaces int) {
	m := mp.mesh
	stats = make([]PartitionStats, mp.config.NumPartitions)
	for i := range stats {
		stats[i].ID = i
		stats[i].CellTypes = make(map[CellType]int)
		stats[i].Neighbors = make(map[int]int)
	}
	for icl, p := range part {
		st := &stats[p]
		st.NumCells++
		st.CellTypes[m.Cltpn[icl]]++
		st.ComputeLoad += int64(mp.computeCost(m.Cltpn[icl]))
	}
	fccls := m.Fccls()
	for ifc := range fccls {
		c0, c1 := fccls[ifc][0], fccls[ifc][1]
		if c1 == NoCell {
			continue
		}
		p0, p1 := int(part[c0]), int(part[c1])
		if p0 != p1 {
			cutFaces++
			stats[p0].Neighbors[p1]++
			stats[p1].Neighbors[p0]++
		}
	}
	return
}

func (mp *Partitioner) analyze(part []int32, objval int32) {
	if !mp.config.Verbose {
		return
	}
	stats, cutFaces := mp.Stats(part)

	avgLoad := float64(0)
	maxLoad := int64(0)
	minLoad := int64(math.MaxInt64)
	for _, st := range stats {
		avgLoad += float64(st.ComputeLoad)
		if st.ComputeLoad > maxLoad {
			maxLoad = st.ComputeLoad
		}
		if st.ComputeLoad < minLoad {
			minLoad = st.ComputeLoad
		}
	}
	avgLoad /= float64(len(stats))
	imbalance := float64(maxLoad)/avgLoad - 1.0

	log.Printf("Partition Analysis:")
	log.Printf("  Objective value: %d", objval)
	log.Printf("  Cut faces: %d", cutFaces)
	log.Printf("  Load imbalance: %.2f%%", imbalance*100)
	log.Printf("  Load range: [%d, %d], avg: %.1f", minLoad, maxLoad, avgLoad)
	for _, st := range stats {
		log.Printf("  Partition %d: %d cells, load %d, %d neighbors, types %v",
			st.ID, st.NumCells, st.ComputeLoad, len(st.Neighbors), st.CellTypes)
	}
}
