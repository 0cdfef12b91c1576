package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// GeoPoint represents resolved coordinates for a delivery address together
// with the display name the geocoding collaborator returned. A GeoPoint may
// be a deterministic regional fallback when geocoding failed; route
// generation must always succeed with an approximate result.
type GeoPoint struct {
	lat         float64
	lon         float64
	displayName string
}

// NewGeoPoint creates a GeoPoint after range-checking the coordinates.
func NewGeoPoint(lat, lon float64, displayName string) (GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude",
			fmt.Errorf("%f is outside [-90, 90]", lat))
	}
	if lon < -180 || lon > 180 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude",
			fmt.Errorf("%f is outside [-180, 180]", lon))
	}

	return GeoPoint{lat: lat, lon: lon, displayName: displayName}, nil
}

// Lat returns the latitude.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// DisplayName returns the resolved place name, if any.
func (p GeoPoint) DisplayName() string {
	return p.displayName
}

// String renders the point as "lat,lon".
func (p GeoPoint) String() string {
	return fmt.Sprintf("%f,%f", p.lat, p.lon)
}
