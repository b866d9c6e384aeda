package common

const (
	// TPS is the fixed simulation rate.
	TPS = 60
	// Step is one simulation step in seconds.
	Step = 1.0 / TPS
	// Gravity in pixels per second squared, screen y-down.
	Gravity = 1400.0

	// BaseWidth and BaseHeight are the logical screen size. Rooms are one
	// screen each.
	BaseWidth  = 640
	BaseHeight = 360
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Center returns the center of a box whose top-left corner is (x, y).
func Center(x, y, w, h float64) (float64, float64) {
	return x + w/2, y + h/2
}
