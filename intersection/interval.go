package intersection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Interval is a closed range [Min, Max] of ray parameters.
// Normal holds the surface normal at Min and at Max for the primitives that
// define one; it is the zero vector otherwise.
type Interval struct {
	Min    float64
	Max    float64
	Normal [2]mgl64.Vec3
}

// Infinite covers every real parameter and Invalid covers none. Both use the
// largest finite float so that interval arithmetic never produces NaN.
var (
	Infinite = Interval{Min: -math.MaxFloat64, Max: math.MaxFloat64}
	Invalid  = Interval{Min: math.MaxFloat64, Max: -math.MaxFloat64}
)

// NewInterval builds an interval without normals
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// IsValid reports whether Min <= Max
func (i Interval) IsValid() bool {
	return i.Min <= i.Max
}

// Contains reports whether t lies within the interval
func (i Interval) Contains(t float64) bool {
	return t >= i.Min && t <= i.Max
}

// Intersection keeps the largest minimum and the smallest maximum.
// Invalid is absorbing.
func (i Interval) Intersection(other Interval) Interval {
	result := i
	if other.Min > result.Min {
		result.Min = other.Min
		result.Normal[0] = other.Normal[0]
	}
	if other.Max < result.Max {
		result.Max = other.Max
		result.Normal[1] = other.Normal[1]
	}
	return result
}

// Union keeps the smallest minimum and the largest maximum.
// Invalid is the identity.
func (i Interval) Union(other Interval) Interval {
	result := i
	if other.Min < result.Min {
		result.Min = other.Min
		result.Normal[0] = other.Normal[0]
	}
	if other.Max > result.Max {
		result.Max = other.Max
		result.Normal[1] = other.Normal[1]
	}
	return result
}

// Complement returns the values of b that are not in i, as long as they form
// a single range. When i splits b in two, the lower part is returned.
func (i Interval) Complement(b Interval) Interval {
	switch {
	case inRange(b.Min, i.Min, i.Max):
		// [~~~~[~~~~]----]  i covers the low end of b
		return Interval{Min: i.Max, Max: b.Max, Normal: [2]mgl64.Vec3{i.Normal[1], b.Normal[1]}}
	case inRange(b.Max, i.Min, i.Max):
		// [----[~~~~]~~~~]  i covers the high end of b
		return Interval{Min: b.Min, Max: i.Min, Normal: [2]mgl64.Vec3{b.Normal[0], i.Normal[0]}}
	case inRange(i.Min, b.Min, b.Max) && inRange(i.Max, b.Min, b.Max):
		// [----[~~~~]----]  i lies inside b
		return Interval{Min: b.Min, Max: i.Min, Normal: [2]mgl64.Vec3{b.Normal[0], i.Normal[0]}}
	}
	return Invalid
}

// FirstT returns the first endpoint that is not infinite.
// It returns math.MaxFloat64 when both are.
func (i Interval) FirstT() float64 {
	if i.Min != -math.MaxFloat64 && i.Min != math.MaxFloat64 {
		return i.Min
	}
	return i.Max
}

// Clip restricts the interval to [lo, hi]. Endpoints that move lose their normal.
func (i Interval) Clip(lo, hi float64) Interval {
	if i.Min < lo {
		i.Min = lo
		i.Normal[0] = mgl64.Vec3{}
	}
	if i.Max > hi {
		i.Max = hi
		i.Normal[1] = mgl64.Vec3{}
	}
	return i
}

func finite(t float64) bool {
	return t != math.MaxFloat64 && t != -math.MaxFloat64
}

func inRange(value, min, max float64) bool {
	return value >= min && value <= max
}
