package liquid

import "math"

// Rect is an axis aligned area in world pixels with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// minImpulseSpeed is the speed at or below which the player leaves no wake.
const minImpulseSpeed = 1.0

// ComputeImpulse returns the (u, v, strength) impulse uniform for a player at
// (px, py) moving at (vx, vy) inside room, whose simulation texture is texW by
// texH. u and v are measured from the room's top-left corner in texture
// widths and heights. A slow player produces the zero impulse.
func ComputeImpulse(room Rect, texW, texH int, px, py, vx, vy, strength float64) [3]float64 {
	speed := math.Hypot(vx, vy)
	if speed <= minImpulseSpeed || texW <= 0 || texH <= 0 {
		return [3]float64{}
	}
	u := (px - room.X) / float64(texW)
	v := (py - room.Y) / float64(texH)
	return [3]float64{u, v, strength * speed / 256}
}

// textureSize is the simulation texture size for a room: each dimension is
// twice its truncated half extent.
func textureSize(room Rect) (int, int) {
	return int(room.W/2) * 2, int(room.H/2) * 2
}
