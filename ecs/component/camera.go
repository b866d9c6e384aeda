package component

// Camera frames the room the player is in.
type Camera struct {
	X, Y          float64
	Width, Height float64
}

var CameraComponent = NewComponent[Camera]()
