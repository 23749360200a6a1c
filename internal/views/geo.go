package views

import (
	"math"

	"github.com/user/gridlex/internal/model"
)

// EarthRadiusKm is the mean earth radius used for distances.
const EarthRadiusKm = 6371.0

// Point is a record placed on the map.
type Point struct {
	Record   model.Record   `json:"record"`
	Location model.Location `json:"location"`
	// DistanceKm is set by Near.
	DistanceKm float64 `json:"distanceKm,omitempty"`
}

// Points returns the records that carry a location, in input order.
func Points(records []model.Record) []Point {
	points := make([]Point, 0, len(records))
	for _, rec := range records {
		if loc := rec.Meta().Location; loc != nil {
			points = append(points, Point{Record: rec, Location: *loc})
		}
	}
	return points
}

// Near keeps the points within radiusKm of center and records each
// point's distance.
func Near(points []Point, center model.Location, radiusKm float64) []Point {
	result := make([]Point, 0, len(points))
	for _, p := range points {
		d := Distance(center, p.Location)
		if d <= radiusKm {
			p.DistanceKm = d
			result = append(result, p)
		}
	}
	return result
}

// Distance returns the great-circle distance between a and b in kilometres
// using the haversine formula.
func Distance(a, b model.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
