// Package core holds the parameter set shared by the framing, transform and
// cepstrum stages, plus small numeric helpers.
package core

import "math"

// PowerFloor is the value substituted for exact silence before taking a
// logarithm of power.
const PowerFloor = math.SmallestNonzeroFloat64

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlooredPowerToDB converts linear power to dB (10*log10 convention) after
// raising it to at least PowerFloor. Negative and zero input map to the
// floor, so the result is always finite for finite input.
func FlooredPowerToDB(power float64) float64 {
	return 10 * math.Log10(math.Max(power, PowerFloor))
}

// DBPowerToLinear converts dB to linear power (10*log10 convention).
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}
