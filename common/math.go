package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SmoothDamp moves current toward target along a critically damped spring.
// velocity carries the spring state between calls and is updated in place.
// The approach never overshoots target.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if velocity == nil || dt <= 0 {
		return current
	}

	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2.0 / smoothTime

	x := omega * dt
	decay := 1.0 / (1.0 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay

	out := target + (change+temp)*decay
	if (target-current > 0) == (out > target) {
		out = target
		*velocity = 0
	}
	return out
}
