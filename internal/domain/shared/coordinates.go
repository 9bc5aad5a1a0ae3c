package shared

import (
	"fmt"
	"math"
)

// MarsRadiusKm is the mean radius used for surface distances
const MarsRadiusKm = 3393.0

// Coordinates is an immutable surface location in spherical form.
// Phi is the polar angle from the north pole (0..π), Theta the longitude (0..2π).
type Coordinates struct {
	Phi   float64 `json:"phi" yaml:"phi"`
	Theta float64 `json:"theta" yaml:"theta"`
}

// NewCoordinates creates coordinates with validation
func NewCoordinates(phi, theta float64) (Coordinates, error) {
	if phi < 0 || phi > math.Pi {
		return Coordinates{}, NewValidationError("phi", fmt.Sprintf("must be within [0, π], got %f", phi))
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return Coordinates{}, NewValidationError("theta", "must be finite")
	}
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return Coordinates{Phi: phi, Theta: theta}, nil
}

// DistanceTo returns the great-circle distance in km to another location,
// using the haversine in its atan2 form so that coincident and antipodal
// points both stay accurate.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	lat1 := math.Pi/2 - c.Phi
	lat2 := math.Pi/2 - other.Phi
	dLat := lat2 - lat1
	dLon := other.Theta - c.Theta

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	h = math.Max(0, math.Min(1, h))

	return 2 * MarsRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Equals reports whether both coordinates denote the same point
func (c Coordinates) Equals(other Coordinates) bool {
	return c.Phi == other.Phi && c.Theta == other.Theta
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Phi, c.Theta)
}
