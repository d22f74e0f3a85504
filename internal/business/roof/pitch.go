package roof

import "math"

const (
	BuildingResidential = "residential"
	BuildingCommercial  = "commercial"
)

const (
	minPitch = 10.0
	maxPitch = 45.0
)

// EstimatePitch guesses a roof pitch in degrees from its footprint area.
// Commercial roofs start flatter; large roofs trend flatter and small ones
// steeper. Unknown building types are treated as residential.
func EstimatePitch(areaSqFt float64, buildingType string) float64 {
	pitch := 22.5
	if buildingType == BuildingCommercial {
		pitch = 15.0
	}

	switch {
	case areaSqFt > 3000:
		pitch -= 5.0
	case areaSqFt < 1000:
		pitch += 5.0
	}

	return round1(math.Max(minPitch, math.Min(pitch, maxPitch)))
}

// PitchMultiplier maps a pitch to the labor multiplier for its steepness band.
// Each band includes its upper bound.
func PitchMultiplier(pitchDegrees, steepMultiplier float64) float64 {
	switch {
	case pitchDegrees <= 25:
		return 1.0
	case pitchDegrees <= 35:
		return 1.15
	case pitchDegrees <= 45:
		return steepMultiplier
	default:
		return 1.5
	}
}
