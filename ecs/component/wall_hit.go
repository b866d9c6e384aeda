package component

// WallHit is a one-shot marker added by PhysicsSystem when a block's shape
// begins touching a solid. MovingBlockSystem consumes and removes it.
type WallHit struct {
	Count   int
	NormalX float64
	NormalY float64
}

var WallHitComponent = NewComponent[WallHit]()
