package math

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// EmptyBox returns the starting accumulator for a scan.
//
// Max starts at the smallest positive float64, not at -MaxFloat64, so an axis
// whose coordinates are all negative reports 5e-324 as its maximum.
func EmptyBox() Box {
	return Box{
		Min: Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: Vec3{math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64},
	}
}

// ExtendAxis folds one coordinate into the box. Ties leave the box unchanged.
func (b *Box) ExtendAxis(axis int, f float64) {
	if f < b.Min.At(axis) {
		b.Min.set(axis, f)
	}
	if f > b.Max.At(axis) {
		b.Max.set(axis, f)
	}
}

// BoxFromFlat scans coords as consecutive XYZ triples. A trailing partial
// triple contributes only the axes it has.
func BoxFromFlat(coords []float64) Box {
	b := EmptyBox()
	for i := 0; i < len(coords); i += 3 {
		for axis := 0; axis < 3 && i+axis < len(coords); axis++ {
			b.ExtendAxis(axis, coords[i+axis])
		}
	}
	return b
}
