package region

import (
	"fmt"

	"go-launchgrid/grid"
)

// Empty is a placeholder region: it claims no buttons, ignores all input
// and keeps its matrix dark
type Empty struct {
	Base
}

// NewEmpty creates an empty region covering rect
func NewEmpty(rect grid.Rect) (*Empty, error) {
	if rect.W <= 0 || rect.H <= 0 {
		return nil, fmt.Errorf("empty region %v: empty size", rect)
	}
	return &Empty{Base: newBase(rect)}, nil
}
