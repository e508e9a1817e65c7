package core

// Facing is a cardinal direction. The zero value is East.
type Facing int

const (
	East Facing = iota
	South
	West
	North
)

// facingDeltas gives the (dx, dy) of one forward step in each facing.
// Index matches the Facing constants above; y grows downward.
var facingDeltas = [4][2]int{
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
	North: {0, -1},
}

// Delta returns the (dx, dy) of a single forward step in this facing.
func (f Facing) Delta() (dx, dy int) {
	d := facingDeltas[f]
	return d[0], d[1]
}

// RotateLeft returns the facing one quarter-turn counter-clockwise.
func (f Facing) RotateLeft() Facing {
	return Facing((int(f) + 3) % 4)
}

// RotateRight returns the facing one quarter-turn clockwise.
func (f Facing) RotateRight() Facing {
	return Facing((int(f) + 1) % 4)
}

func (f Facing) String() string {
	switch f {
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	case North:
		return "N"
	default:
		return "?"
	}
}

// Pose is an agent's position and facing, with no associated time.
type Pose struct {
	X, Y   int
	Facing Facing
}

// Cell is a bare grid coordinate, used for goals which have no facing.
type Cell struct {
	X, Y int
}

// TimedPose is a Pose at an integer time step.
type TimedPose struct {
	X, Y   int
	Facing Facing
	T      int
}

// Pose strips the time off a TimedPose.
func (tp TimedPose) Pose() Pose {
	return Pose{X: tp.X, Y: tp.Y, Facing: tp.Facing}
}

// Cell strips both facing and time off a TimedPose.
func (tp TimedPose) Cell() Cell {
	return Cell{X: tp.X, Y: tp.Y}
}

// Path is a non-empty, time-ordered sequence of poses for one agent,
// starting at t=0 from the agent's start pose. The pose at index k is
// implicitly at time k.
type Path []TimedPose

// Cost is the path's action count: len(path)-1. An empty path has
// cost 0 by convention, though a valid Path is never empty.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// At returns the agent's cell at time t, extending the final pose
// indefinitely once the path has ended (an agent that has reached its
// goal is considered to occupy it forever for conflict purposes).
func (p Path) At(t int) Cell {
	if t < len(p) {
		return p[t].Cell()
	}
	return p[len(p)-1].Cell()
}

// Len reports how many time steps the path spans before it freezes at
// its final pose.
func (p Path) Len() int {
	return len(p)
}
