package roof

import (
	"math"

	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/elev8ted-roofs/estimator-api/pkg/util"
)

// PolygonArea returns the real-world area of a traced outline. scale is the
// length of one pixel in feet, so the pixel area is multiplied by scale².
// Outlines with fewer than three points have no area.
func PolygonArea(points []model.Point, scale float64) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	area := math.Abs(sum/2) * scale * scale
	return round2(area)
}

// Perimeter returns the length of the closed outline, including the edge from
// the last point back to the first.
func Perimeter(points []model.Point, scale float64) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		total += math.Hypot(b.X-a.X, b.Y-a.Y) * scale
	}
	return round2(total)
}

func round2(v float64) float64 {
	return util.Round(v, 2)
}

func round1(v float64) float64 {
	return util.Round(v, 1)
}
