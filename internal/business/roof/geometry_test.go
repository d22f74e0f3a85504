package roof

import (
	"slices"
	"testing"

	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/stretchr/testify/assert"
)

var unitSquare = []model.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name   string
		points []model.Point
		scale  float64
		want   float64
	}{
		{name: "unit square", points: unitSquare, scale: 1, want: 1},
		{name: "scale applies squared", points: unitSquare, scale: 2, want: 4},
		{name: "rectangle in pixels", points: []model.Point{{X: 100, Y: 150}, {X: 700, Y: 150}, {X: 700, Y: 450}, {X: 100, Y: 450}}, scale: 0.1, want: 1800},
		{name: "triangle", points: []model.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}, scale: 1, want: 6},
		{name: "L shape", points: []model.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}, scale: 1, want: 3},
		{name: "rounds to cents", points: []model.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, scale: 0.333, want: 0.06},
		{name: "exact half cent rounds to even", points: []model.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0, Y: 0.5}}, scale: 1, want: 0.12},
		{name: "half cent above tie rounds up", points: []model.Point{{X: 0, Y: 0}, {X: 1.5, Y: 0}, {X: 0, Y: 0.5}}, scale: 1, want: 0.38},
		{name: "two points", points: []model.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, scale: 1, want: 0},
		{name: "empty", points: nil, scale: 1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolygonArea(tt.points, tt.scale))
		})
	}
}

func TestPolygonAreaOrientationIndependent(t *testing.T) {
	pts := []model.Point{{X: 12, Y: 3}, {X: 40, Y: 8}, {X: 35, Y: 30}, {X: 10, Y: 27}, {X: 4, Y: 15}}
	reversed := slices.Clone(pts)
	slices.Reverse(reversed)

	assert.Equal(t, PolygonArea(pts, 1.7), PolygonArea(reversed, 1.7))
	assert.Greater(t, PolygonArea(pts, 1.7), 0.0)
}

func TestPerimeter(t *testing.T) {
	tests := []struct {
		name   string
		points []model.Point
		scale  float64
		want   float64
	}{
		{name: "unit square", points: unitSquare, scale: 1, want: 4},
		{name: "scale applies linearly", points: unitSquare, scale: 2, want: 8},
		{name: "right triangle", points: []model.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}}, scale: 1, want: 12},
		{name: "segment counts both ways", points: []model.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, scale: 1, want: 10},
		{name: "single point", points: []model.Point{{X: 1, Y: 1}}, scale: 1, want: 0},
		{name: "empty", points: nil, scale: 1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Perimeter(tt.points, tt.scale))
		})
	}
}
