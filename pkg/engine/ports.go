package engine

import "github.com/hqpham/boardsense/pkg/board"

// Sensor produces one occupancy reading per tick. Implementations must
// never report overlapping occupancy for the two colors; resolving
// ambiguity is the implementation's responsibility.
type Sensor interface {
	Poll() board.Snapshot
}
