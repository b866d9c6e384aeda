package component

import "image/color"

// Fill draws the entity's physics box in a flat color.
type Fill struct {
	Color color.RGBA
}

var FillComponent = NewComponent[Fill]()
