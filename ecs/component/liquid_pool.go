package component

import (
	"image/color"

	"github.com/milk9111/molten/liquid"
)

// LiquidPool is a surface drawn with a listener material of the liquid
// simulation.
type LiquidPool struct {
	Room     string
	W        float64
	H        float64
	Color    color.RGBA
	Material *liquid.Material
}

var LiquidPoolComponent = NewComponent[LiquidPool]()
