package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	Grounded  bool
}

var PlayerComponent = NewComponent[Player]()
