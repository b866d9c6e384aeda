package component

import "github.com/jakecoffman/cp"

// BodyRole selects the collision type a body is created with.
type BodyRole int

const (
	BodyRoleSolid BodyRole = iota
	BodyRolePlayer
	BodyRoleBlock
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled in by PhysicsSystem.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	Width     float64
	Height    float64
	Mass      float64
	Friction  float64
	Static    bool
	NoGravity bool
	Role      BodyRole
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
