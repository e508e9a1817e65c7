package algo

import "github.com/elektrokombinacija/gridmapf/internal/core"

// prioritizedMaxTime is the horizon Solve falls back to when MaxTime
// is not positive; otherwise the planner uses MaxTime as given.
const prioritizedMaxTime = 200

// goalHoldSteps is how many extra ticks a just-arrived agent reserves
// its goal cell for, so later agents steer around a parked
// predecessor instead of just missing it by one tick.
const goalHoldSteps = 9

// Prioritized is the greedy sequential fallback planner: agents are
// planned one at a time, in input order, against a reservation table
// built from every path already planned. It is fast where CBS is
// impractically slow, at the cost of being unsound — see the package
// docs for the vertex-only reservation limitation.
type Prioritized struct {
	MaxTime int
}

// NewPrioritized creates a prioritized planner with the given horizon.
func NewPrioritized(maxTime int) *Prioritized {
	return &Prioritized{MaxTime: maxTime}
}

func (p *Prioritized) Name() string { return "Prioritized" }

// Solve plans every agent in input order. An agent that cannot be
// routed around the accumulated reservations degrades to a
// one-element stay-put path and planning continues with the next
// agent — the result is always the same length as starts/goals, but
// is not guaranteed feasible or optimal.
func (p *Prioritized) Solve(grid *core.Grid, starts []core.Pose, goals []core.Cell) (JointPlan, bool) {
	maxTime := p.MaxTime
	if maxTime <= 0 {
		maxTime = prioritizedMaxTime
	}

	paths := make(JointPlan, len(starts))
	reserved := make(map[[3]int]struct{})

	for i := range starts {
		agent := AgentID(i)
		constraints := constraintsFromReservations(reserved, agent)

		path, ok := SpaceTimeAStar(grid, starts[i], goals[i], constraints, agent, rootBattery, DefaultMinBattery, maxTime)
		if !ok {
			paths[i] = core.Path{{X: starts[i].X, Y: starts[i].Y, Facing: starts[i].Facing, T: 0}}
			continue
		}

		paths[i] = path
		reserveePath(reserved, path)
	}

	return paths, true
}

// constraintsFromReservations synthesizes vertex constraints for
// agent from every (t, x, y) already reserved by earlier agents. Edge
// constraints are deliberately not synthesized in this mode — a known
// soundness gap documented in the package docs.
func constraintsFromReservations(reserved map[[3]int]struct{}, agent AgentID) []Constraint {
	constraints := make([]Constraint, 0, len(reserved))
	for key := range reserved {
		constraints = append(constraints, Constraint{
			Time: key[0], Agent: agent, X: key[1], Y: key[2], IsVertex: true,
		})
	}
	return constraints
}

// reserveePath adds every pose in path to the reservation table, then
// additionally holds the final cell for goalHoldSteps ticks past
// arrival so later agents avoid a parked predecessor.
func reserveePath(reserved map[[3]int]struct{}, path core.Path) {
	for _, tp := range path {
		reserved[[3]int{tp.T, tp.X, tp.Y}] = struct{}{}
	}

	last := path[len(path)-1]
	for wait := 1; wait <= goalHoldSteps; wait++ {
		reserved[[3]int{last.T + wait, last.X, last.Y}] = struct{}{}
	}
}
