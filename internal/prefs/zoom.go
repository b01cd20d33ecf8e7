package prefs

import "math"

const (
	MinZoom     = 0.5
	MaxZoom     = 2.0
	ZoomStep    = 0.1
	DefaultZoom = 1.0
)

// ClampZoom bounds z to [MinZoom, MaxZoom] and rounds it to one decimal.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return DefaultZoom
	}
	z = math.Max(MinZoom, math.Min(MaxZoom, z))
	return math.Round(z*10) / 10
}

func ZoomIn(z float64) float64  { return ClampZoom(z + ZoomStep) }
func ZoomOut(z float64) float64 { return ClampZoom(z - ZoomStep) }
