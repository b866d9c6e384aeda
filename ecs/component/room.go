package component

// RoomTransitionEvent is the world event type pushed when the player enters a
// different room. Its Data is a RoomTransition.
const RoomTransitionEvent = "room_transition"

type Room struct {
	Name string
	X    float64
	Y    float64
	W    float64
	H    float64
}

// Contains reports whether the point is inside the room. Edges on the left
// and top belong to the room.
func (r Room) Contains(x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

type RoomTransition struct {
	From string
	To   Room
}

var RoomComponent = NewComponent[Room]()

// CurrentRoom tracks which room an entity is in.
type CurrentRoom struct {
	Name string
}

var CurrentRoomComponent = NewComponent[CurrentRoom]()
