package models

// Coordinate represents a geographical point defined by its latitude and longitude.
type Coordinate struct {
	Latitude  float64 // Latitude of the geographical point, in degrees.
	Longitude float64 // Longitude of the geographical point, in degrees.
}
