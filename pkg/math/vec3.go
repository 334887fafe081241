// Package math provides the small amount of geometry the exporter needs.
package math

// Vec3 is a point in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// At returns the component for axis 0 (X), 1 (Y) or 2 (Z).
func (v Vec3) At(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v *Vec3) set(axis int, f float64) {
	switch axis {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
}

// Array returns the components in X, Y, Z order.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
