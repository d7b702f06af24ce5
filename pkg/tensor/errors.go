package tensor

import "fmt"

// ShapeError reports a tensor whose shape cannot be interpreted as an
// image or image batch. Rank is always set; Channels is only set when
// the rank was acceptable but the channel count was not.
type ShapeError struct {
	Shape    []int
	Rank     int
	Channels int
}

func (e *ShapeError) Error() string {
	if e.Channels != 0 {
		return fmt.Sprintf("tensor: unsupported channel count %d in shape %v, want 3 or 4", e.Channels, e.Shape)
	}
	return fmt.Sprintf("tensor: unsupported rank %d in shape %v, want 3 or 4", e.Rank, e.Shape)
}
