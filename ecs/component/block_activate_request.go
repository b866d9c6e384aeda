package component

// BlockActivateRequest is a one-shot request to start a block's zoom. Zero
// fields keep the block's tuning.
type BlockActivateRequest struct {
	DirX  float64
	DirY  float64
	Speed float64
}

var BlockActivateRequestComponent = NewComponent[BlockActivateRequest]()
