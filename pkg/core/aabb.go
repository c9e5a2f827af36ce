package core

// minAxisThickness keeps every slab wide enough for the slab test to stay well defined
const minAxisThickness = 1e-4

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing and is the identity of Merge
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates an AABB from per-axis intervals, padding degenerate axes
func NewAABB(x, y, z Interval) AABB {
	return AABB{
		X: padToMinimum(x),
		Y: padToMinimum(y),
		Z: padToMinimum(z),
	}
}

// NewAABBFromPoints creates the AABB spanned by two opposite corners, in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		spanOf(a[0], b[0]),
		spanOf(a[1], b[1]),
		spanOf(a[2], b[2]),
	)
}

func spanOf(a, b float64) Interval {
	if a <= b {
		return NewInterval(a, b)
	}
	return NewInterval(b, a)
}

func padToMinimum(i Interval) Interval {
	if i.Size() < minAxisThickness {
		return i.Expand(minAxisThickness)
	}
	return i
}

// Axis returns the interval for axis n (0=X, 1=Y, 2=Z)
func (b AABB) Axis(n int) Interval {
	switch n {
	case 0:
		return b.X
	case 1:
		return b.Y
	case 2:
		return b.Z
	}
	panic("core: invalid AABB axis")
}

// Merge returns an AABB that bounds both this AABB and another
func (b AABB) Merge(other AABB) AABB {
	return NewAABB(b.X.Join(other.X), b.Y.Join(other.Y), b.Z.Join(other.Z))
}

// IsEmpty reports whether the box bounds no volume at all
func (b AABB) IsEmpty() bool {
	return b.X.IsEmpty() || b.Y.IsEmpty() || b.Z.IsEmpty()
}

// Contains reports whether other lies entirely inside b
func (b AABB) Contains(other AABB) bool {
	for n := 0; n < 3; n++ {
		outer, inner := b.Axis(n), other.Axis(n)
		if inner.Min < outer.Min || inner.Max > outer.Max {
			return false
		}
	}
	return true
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method
func (b AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := b.Axis(axis)
		invDirection := 1.0 / ray.Direction[axis]

		t0 := (slab.Min - ray.Origin[axis]) * invDirection
		t1 := (slab.Max - ray.Origin[axis]) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		// NaN bounds (0 * Inf) fail both comparisons and leave rayT unchanged
		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}
	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to the lower axis index.
func (b AABB) LongestAxis() int {
	x, y, z := b.X.Size(), b.Y.Size(), b.Z.Size()
	if x >= y && x >= z {
		return 0
	}
	if y >= z {
		return 1
	}
	return 2
}

// Translate returns the box moved by offset
func (b AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: b.X.Shift(offset[0]),
		Y: b.Y.Shift(offset[1]),
		Z: b.Z.Shift(offset[2]),
	}
}

// Min returns the minimum corner
func (b AABB) Min() Vec3 {
	return Vec3{b.X.Min, b.Y.Min, b.Z.Min}
}

// Max returns the maximum corner
func (b AABB) Max() Vec3 {
	return Vec3{b.X.Max, b.Y.Max, b.Z.Max}
}

// Center returns the center point of the AABB
func (b AABB) Center() Vec3 {
	return b.Min().Add(b.Max()).Mul(0.5)
}

// Corners returns the eight corners of the box
func (b AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		x, y, z := b.X.Min, b.Y.Min, b.Z.Min
		if i&1 != 0 {
			x = b.X.Max
		}
		if i&2 != 0 {
			y = b.Y.Max
		}
		if i&4 != 0 {
			z = b.Z.Max
		}
		corners[i] = Vec3{x, y, z}
	}
	return corners
}
