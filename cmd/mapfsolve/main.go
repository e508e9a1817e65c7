// Command mapfsolve runs a handful of canned multi-agent pathfinding
// scenarios and reports the plan each solver produces.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/elektrokombinacija/gridmapf/internal/algo"
	"github.com/elektrokombinacija/gridmapf/internal/core"
)

// scenario is a named MAPF instance: a grid plus each agent's start
// pose and goal cell.
type scenario struct {
	name   string
	grid   *core.Grid
	starts []core.Pose
	goals  []core.Cell
}

func scenarios() []scenario {
	return []scenario{
		{
			name:   "S1 trivial identity",
			grid:   core.NewGrid(3, 3),
			starts: []core.Pose{{X: 1, Y: 1, Facing: core.East}},
			goals:  []core.Cell{{X: 1, Y: 1}},
		},
		{
			name:   "S2 straight line",
			grid:   core.NewGrid(5, 1),
			starts: []core.Pose{{X: 0, Y: 0, Facing: core.East}},
			goals:  []core.Cell{{X: 4, Y: 0}},
		},
		{
			name:   "S3 rotation required",
			grid:   core.NewGrid(3, 3),
			starts: []core.Pose{{X: 0, Y: 0, Facing: core.North}},
			goals:  []core.Cell{{X: 2, Y: 0}},
		},
		{
			name: "S4 simple crossing",
			grid: core.NewGrid(3, 3),
			starts: []core.Pose{
				{X: 0, Y: 1, Facing: core.East},
				{X: 1, Y: 0, Facing: core.South},
			},
			goals: []core.Cell{{X: 2, Y: 1}, {X: 1, Y: 2}},
		},
		{
			name: "S5 head-on swap",
			grid: core.NewGrid(3, 3),
			starts: []core.Pose{
				{X: 0, Y: 1, Facing: core.East},
				{X: 2, Y: 1, Facing: core.West},
			},
			goals: []core.Cell{{X: 2, Y: 1}, {X: 0, Y: 1}},
		},
		{
			name: "S6 narrow corridor deadlock",
			grid: core.NewGrid(3, 1),
			starts: []core.Pose{
				{X: 0, Y: 0, Facing: core.East},
				{X: 2, Y: 0, Facing: core.West},
			},
			goals: []core.Cell{{X: 2, Y: 0}, {X: 0, Y: 0}},
		},
		{
			name: "five-agent open field",
			grid: core.NewGridWithBlocked(6, 6, [][2]int{{2, 2}, {2, 3}, {3, 2}}),
			starts: []core.Pose{
				{X: 0, Y: 0, Facing: core.East},
				{X: 5, Y: 0, Facing: core.West},
				{X: 0, Y: 5, Facing: core.North},
				{X: 5, Y: 5, Facing: core.North},
				{X: 0, Y: 2, Facing: core.East},
			},
			goals: []core.Cell{{X: 5, Y: 5}, {X: 0, Y: 5}, {X: 5, Y: 0}, {X: 0, Y: 0}, {X: 5, Y: 2}},
		},
	}
}

// chooseSolver implements the reference collaborator policy: small
// groups get the optimal, exhaustive CBS search; anything larger falls
// back to the fast, best-effort prioritized planner.
func chooseSolver(numAgents int, maxTime int) algo.Solver {
	if numAgents <= 3 {
		return algo.NewCBS(maxTime)
	}
	return algo.NewPrioritized(maxTime)
}

func main() {
	maxTime := flag.Int("max-time", 150, "search horizon in ticks")
	flag.Parse()

	fmt.Println("=== Grid MAPF Solver ===")

	for _, s := range scenarios() {
		if err := algo.ValidateInstance(s.grid, s.starts, s.goals); err != nil {
			fmt.Printf("\n%s: %v\n", s.name, err)
			continue
		}

		solver := chooseSolver(len(s.starts), *maxTime)

		fmt.Printf("\n%s (%d agents, %s): ", s.name, len(s.starts), solver.Name())
		start := time.Now()
		plan, ok := solver.Solve(s.grid, s.starts, s.goals)
		elapsed := time.Since(start)

		if !ok {
			fmt.Printf("infeasible (%v)\n", elapsed)
			continue
		}

		cost := 0
		for _, p := range plan {
			cost += p.Cost()
		}
		conflict := algo.FindFirstConflict(plan)
		fmt.Printf("sum-of-costs=%d conflict-free=%v time=%v\n", cost, conflict == nil, elapsed)
	}
}

