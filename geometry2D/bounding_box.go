package geometry2D

import (
	"math"
)

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(points [][2]float64) (Box *BoundingBox) {
	if len(points) == 0 {
		return nil
	}
	Box = &BoundingBox{XMin: points[0], XMax: points[0]}
	for _, point := range points {
		for i := 0; i < 2; i++ {
			Box.XMin[i] = math.Min(Box.XMin[i], point[i])
			Box.XMax[i] = math.Max(Box.XMax[i], point[i])
		}
	}
	return Box
}

func (bb *BoundingBox) Centroid() [2]float64 {
	return [2]float64{
		0.5 * (bb.XMax[0] + bb.XMin[0]),
		0.5 * (bb.XMax[1] + bb.XMin[1]),
	}
}

func (bb *BoundingBox) Scale(scale float64) (bbOut *BoundingBox) {
	bbOut = new(BoundingBox)
	centroid := bb.Centroid()
	for i := 0; i < 2; i++ {
		bbOut.XMin[i] = scale*(bb.XMin[i]-centroid[i]) + centroid[i]
		bbOut.XMax[i] = scale*(bb.XMax[i]-centroid[i]) + centroid[i]
	}
	return bbOut
}

func (bb *BoundingBox) Grow(newBB *BoundingBox) {
	for i := 0; i < 2; i++ {
		bb.XMin[i] = math.Min(bb.XMin[i], newBB.XMin[i])
		bb.XMax[i] = math.Max(bb.XMax[i], newBB.XMax[i])
	}
}

func (bb *BoundingBox) PointInside(point [2]float64) (within bool) {
	for ii := 0; ii < 2; ii++ {
		if point[ii] > bb.XMax[ii] || point[ii] < bb.XMin[ii] {
			return false
		}
	}
	return true
}

// Side names the box side both points lie on, "" if they share none. tol is
// relative to the box size.
func (bb *BoundingBox) Side(p1, p2 [2]float64, tol float64) string {
	var (
		dx = tol * math.Max(bb.XMax[0]-bb.XMin[0], bb.XMax[1]-bb.XMin[1])
		on = func(a, b float64) bool { return math.Abs(a-b) <= dx }
	)
	switch {
	case on(p1[1], bb.XMin[1]) && on(p2[1], bb.XMin[1]):
		return SideBottom
	case on(p1[0], bb.XMax[0]) && on(p2[0], bb.XMax[0]):
		return SideRight
	case on(p1[1], bb.XMax[1]) && on(p2[1], bb.XMax[1]):
		return SideTop
	case on(p1[0], bb.XMin[0]) && on(p2[0], bb.XMin[0]):
		return SideLeft
	}
	return ""
}
