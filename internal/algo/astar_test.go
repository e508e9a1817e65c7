package algo_test

import (
	"testing"

	"github.com/elektrokombinacija/gridmapf/internal/algo"
	"github.com/elektrokombinacija/gridmapf/internal/core"
	"github.com/stretchr/testify/require"
)

func TestSpaceTimeAStar_TrivialIdentity(t *testing.T) {
	grid := core.NewGrid(3, 3)
	start := core.Pose{X: 1, Y: 1, Facing: core.East}
	goal := core.Cell{X: 1, Y: 1}

	path, ok := algo.SpaceTimeAStar(grid, start, goal, nil, 0, 100, algo.DefaultMinBattery, algo.DefaultMaxTime)
	require.True(t, ok)
	require.Equal(t, core.Path{{X: 1, Y: 1, Facing: core.East, T: 0}}, path)
	require.Equal(t, 0, path.Cost())
}

func TestSpaceTimeAStar_StraightLine(t *testing.T) {
	grid := core.NewGrid(5, 1)
	start := core.Pose{X: 0, Y: 0, Facing: core.East}
	goal := core.Cell{X: 4, Y: 0}

	path, ok := algo.SpaceTimeAStar(grid, start, goal, nil, 0, 100, algo.DefaultMinBattery, algo.DefaultMaxTime)
	require.True(t, ok)
	require.Equal(t, 4, path.Cost())
	require.Len(t, path, 5)

	for i := 1; i < len(path); i++ {
		require.Equal(t, path[i-1].X+1, path[i].X, "every step is a forward move")
		require.Equal(t, path[i-1].Y, path[i].Y)
		require.Equal(t, core.East, path[i].Facing)
	}
}

func TestSpaceTimeAStar_RotationRequired(t *testing.T) {
	grid := core.NewGrid(3, 3)
	start := core.Pose{X: 0, Y: 0, Facing: core.North}
	goal := core.Cell{X: 2, Y: 0}

	path, ok := algo.SpaceTimeAStar(grid, start, goal, nil, 0, 100, algo.DefaultMinBattery, algo.DefaultMaxTime)
	require.True(t, ok)
	require.Equal(t, 3, path.Cost(), "1 right rotation from North to East + 2 forward moves")
}

func TestSpaceTimeAStar_UnreachableGoal(t *testing.T) {
	grid := core.NewGridWithBlocked(3, 3, [][2]int{{1, 0}, {1, 1}, {1, 2}})
	start := core.Pose{X: 0, Y: 0, Facing: core.East}
	goal := core.Cell{X: 2, Y: 0}

	_, ok := algo.SpaceTimeAStar(grid, start, goal, nil, 0, 100, algo.DefaultMinBattery, algo.DefaultMaxTime)
	require.False(t, ok, "a solid wall must leave the goal unreachable")
}

func TestSpaceTimeAStar_PinnedByConstraintsFails(t *testing.T) {
	// A 1x1 grid has no in-bounds forward move, so the only way off
	// t=0 is to wait or rotate in place. A vertex constraint on the
	// agent's own cell at t=1 blocks all three (wait, rotate-left,
	// rotate-right share the same (x, y)), leaving the agent with no
	// successors at all.
	grid := core.NewGrid(1, 1)
	start := core.Pose{X: 0, Y: 0, Facing: core.East}
	goal := core.Cell{X: 5, Y: 5}

	constraints := []algo.Constraint{
		{Time: 1, Agent: 0, X: 0, Y: 0, IsVertex: true},
	}
	_, ok := algo.SpaceTimeAStar(grid, start, goal, constraints, 0, 100, algo.DefaultMinBattery, 5)
	require.False(t, ok, "every successor forbidden at t=1 leaves no way to reach an unreachable goal")
}

func TestSpaceTimeAStar_EdgeConstraintForcesDetour(t *testing.T) {
	grid := core.NewGrid(2, 2)
	start := core.Pose{X: 0, Y: 0, Facing: core.East}
	goal := core.Cell{X: 1, Y: 0}

	constraints := []algo.Constraint{
		{Time: 1, Agent: 0, X: 0, Y: 0, NextX: 1, NextY: 0, IsVertex: false},
	}

	path, ok := algo.SpaceTimeAStar(grid, start, goal, constraints, 0, 100, algo.DefaultMinBattery, algo.DefaultMaxTime)
	require.True(t, ok)

	for i := 1; i < len(path); i++ {
		violates := path[i-1].X == 0 && path[i-1].Y == 0 && path[i].X == 1 && path[i].Y == 0 && path[i].T == 1
		require.False(t, violates, "path must not take the forbidden edge at t=1")
	}
}

func TestSpaceTimeAStar_BatteryExhaustion(t *testing.T) {
	grid := core.NewGrid(10, 1)
	start := core.Pose{X: 0, Y: 0, Facing: core.East}
	goal := core.Cell{X: 9, Y: 0}

	_, ok := algo.SpaceTimeAStar(grid, start, goal, nil, 0, 3, algo.DefaultMinBattery, algo.DefaultMaxTime)
	require.False(t, ok, "battery of 3 cannot reach a goal 9 steps away")
}

func TestSpaceTimeAStar_EmptyConstraintsMatchesBFS(t *testing.T) {
	// On an open grid with unit-cost actions, the optimal cost from an
	// empty constraint set must equal straight-line Manhattan distance
	// when start and goal already share a compatible facing path.
	grid := core.NewGrid(6, 6)
	start := core.Pose{X: 0, Y: 0, Facing: core.East}
	goal := core.Cell{X: 3, Y: 0}

	path, ok := algo.SpaceTimeAStar(grid, start, goal, nil, 0, 100, algo.DefaultMinBattery, algo.DefaultMaxTime)
	require.True(t, ok)
	require.Equal(t, 3, path.Cost())
}
