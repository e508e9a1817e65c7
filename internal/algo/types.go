// Package algo implements the MAPF solver stack: a space-time A* for
// single agents, a Conflict-Based Search over per-agent constraints,
// a prioritized fallback planner, and the conflict detector shared by
// both high-level solvers.
//
// Battery: SpaceTimeAStar drains one unit of battery per action and
// prunes any state whose battery has reached zero. Its minBattery
// parameter is accepted but never read during search.
//
// Reservations: Prioritized reserves only vertices (time, x, y) on
// behalf of earlier agents, never edges, so two agents can still swap
// across an edge in the same tick; its joint plans are not guaranteed
// conflict-free.
package algo

import (
	"fmt"

	"github.com/elektrokombinacija/gridmapf/internal/core"
)

// ErrAgentCountMismatch is returned when starts and goals name
// different numbers of agents.
var ErrAgentCountMismatch = fmt.Errorf("algo: starts and goals must have the same length")

// ErrStartUntraversable is returned when an agent's start pose sits on
// a blocked or out-of-bounds cell.
var ErrStartUntraversable = fmt.Errorf("algo: agent start cell is blocked or out of bounds")

// ErrGoalUntraversable is returned when an agent's goal cell is blocked
// or out of bounds.
var ErrGoalUntraversable = fmt.Errorf("algo: agent goal cell is blocked or out of bounds")

// AgentID identifies an agent by its index in the starts/goals slices.
type AgentID int

// Constraint prohibits one agent from a single vertex or edge
// transition at one time. Vertex constraints only use Time/Agent/X/Y;
// edge constraints additionally use NextX/NextY to name the forbidden
// transition into (NextX, NextY) at Time.
type Constraint struct {
	Time   int
	Agent  AgentID
	X, Y   int
	NextX  int
	NextY  int
	IsVertex bool
}

// Conflict is the earliest collision found in a joint plan: either two
// agents occupying the same cell at the same time (vertex conflict),
// or two agents swapping across the same edge in one tick (edge
// conflict).
type Conflict struct {
	Time           int
	Agent1, Agent2 AgentID
	X, Y           int
	NextX, NextY   int
	IsEdge         bool
}

// JointPlan is one path per agent, indexed by agent position in the
// original starts/goals slices.
type JointPlan []core.Path

// Solver is the common high-level entry point implemented by CBS and
// the prioritized planner.
type Solver interface {
	// Solve plans a collision-avoiding path for every agent from its
	// start pose to its goal cell. ok is false when no solution (CBS)
	// or no path for some agent (low-level failure inside prioritized
	// mode is absorbed into a stay-put path, not surfaced as !ok).
	Solve(grid *core.Grid, starts []core.Pose, goals []core.Cell) (JointPlan, bool)

	// Name identifies the algorithm, for CLI/benchmark reporting.
	Name() string
}

// ValidateInstance checks the preconditions every Solver expects of its
// starts/goals inputs before search begins: matching lengths, and every
// start/goal cell traversable on grid. Callers driving a Solver from
// untrusted input (CLI flags, generated instance files) should call
// this first; the solvers themselves assume it already holds and do
// not re-check it: fewer goals than starts indexes out of range, and an
// untraversable start or goal is not reported as an error.
func ValidateInstance(grid *core.Grid, starts []core.Pose, goals []core.Cell) error {
	if len(starts) != len(goals) {
		return ErrAgentCountMismatch
	}
	for _, s := range starts {
		if !grid.Traversable(s.X, s.Y) {
			return ErrStartUntraversable
		}
	}
	for _, g := range goals {
		if !grid.Traversable(g.X, g.Y) {
			return ErrGoalUntraversable
		}
	}
	return nil
}

// constraintsFor filters a constraint list down to the ones binding a
// single agent — the low-level planner only ever needs its own
// agent's constraints.
func constraintsFor(constraints []Constraint, agent AgentID) []Constraint {
	var out []Constraint
	for _, c := range constraints {
		if c.Agent == agent {
			out = append(out, c)
		}
	}
	return out
}
