package types

import (
	"fmt"
	"sort"
)

// MaxFaceNodes is the largest node count a face may carry
const MaxFaceNodes = 4

/*
FaceKey is the canonical signature of a face: its node indices sorted in
ascending order, with unused trailing slots set to -1. Two faces with the same
node set always produce equal keys regardless of node order, so the key can be
used directly as a map key for face deduplication.
*/
type FaceKey [MaxFaceNodes]int32

func NewFaceKey(nodes []int32) (fk FaceKey) {
	if len(nodes) < 2 || len(nodes) > MaxFaceNodes {
		panic(fmt.Errorf("a face must have between 2 and %d nodes, have %d",
			MaxFaceNodes, len(nodes)))
	}
	for i := range fk {
		fk[i] = -1
	}
	copy(fk[:], nodes)
	sorted := fk[:len(nodes)]
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return
}

// Len is the number of nodes in the face
func (fk FaceKey) Len() (n int) {
	for _, nd := range fk {
		if nd < 0 {
			break
		}
		n++
	}
	return
}

func (fk FaceKey) GetNodes() []int32 {
	nodes := make([]int32, fk.Len())
	copy(nodes, fk[:])
	return nodes
}

func (fk FaceKey) String() string {
	return fmt.Sprintf("%v", fk.GetNodes())
}
