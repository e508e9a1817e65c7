package algo_test

import (
	"testing"

	"github.com/elektrokombinacija/gridmapf/internal/algo"
	"github.com/elektrokombinacija/gridmapf/internal/core"
	"github.com/stretchr/testify/require"
)

func pathOf(poses ...[3]int) core.Path {
	p := make(core.Path, len(poses))
	for i, pose := range poses {
		p[i] = core.TimedPose{X: pose[0], Y: pose[1], Facing: core.East, T: i}
	}
	return p
}

func TestFindFirstConflict_NoConflict(t *testing.T) {
	paths := algo.JointPlan{
		pathOf([3]int{0, 0}, [3]int{1, 0}, [3]int{2, 0}),
		pathOf([3]int{0, 2}, [3]int{1, 2}, [3]int{2, 2}),
	}
	require.Nil(t, algo.FindFirstConflict(paths))
}

func TestFindFirstConflict_VertexConflict(t *testing.T) {
	paths := algo.JointPlan{
		pathOf([3]int{0, 0}, [3]int{1, 0}, [3]int{2, 0}),
		pathOf([3]int{3, 0}, [3]int{1, 0}, [3]int{0, 0}),
	}
	conflict := algo.FindFirstConflict(paths)
	require.NotNil(t, conflict)
	require.False(t, conflict.IsEdge)
	require.Equal(t, 1, conflict.Time)
	require.Equal(t, 1, conflict.X)
	require.Equal(t, 0, conflict.Y)
	require.Equal(t, algo.AgentID(0), conflict.Agent1)
	require.Equal(t, algo.AgentID(1), conflict.Agent2)
}

func TestFindFirstConflict_EdgeConflict(t *testing.T) {
	paths := algo.JointPlan{
		pathOf([3]int{0, 0}, [3]int{1, 0}),
		pathOf([3]int{1, 0}, [3]int{0, 0}),
	}
	conflict := algo.FindFirstConflict(paths)
	require.NotNil(t, conflict)
	require.True(t, conflict.IsEdge)
	require.Equal(t, 1, conflict.Time)
}

func TestFindFirstConflict_EarliestTimeWins(t *testing.T) {
	// A vertex conflict at t=1 must be reported even though an edge
	// conflict (agents 2 and 3 swapping) also exists later at t=2.
	paths := algo.JointPlan{
		pathOf([3]int{0, 0}, [3]int{1, 1}, [3]int{2, 1}),
		pathOf([3]int{5, 5}, [3]int{1, 1}, [3]int{1, 2}),
		pathOf([3]int{6, 6}, [3]int{7, 7}, [3]int{8, 8}),
		pathOf([3]int{6, 0}, [3]int{8, 8}, [3]int{7, 7}),
	}
	conflict := algo.FindFirstConflict(paths)
	require.NotNil(t, conflict)
	require.Equal(t, 1, conflict.Time)
	require.False(t, conflict.IsEdge)
}

func TestFindFirstConflict_VertexBeforeEdgeAtSameTime(t *testing.T) {
	// At t=1, agents 0 and 1 have a vertex conflict AND agents 2,3
	// have an edge conflict straddling t=0..1. Vertex must win.
	paths := algo.JointPlan{
		pathOf([3]int{0, 0}, [3]int{9, 9}),
		pathOf([3]int{1, 1}, [3]int{9, 9}),
		pathOf([3]int{2, 2}, [3]int{3, 3}),
		pathOf([3]int{3, 3}, [3]int{2, 2}),
	}
	conflict := algo.FindFirstConflict(paths)
	require.NotNil(t, conflict)
	require.False(t, conflict.IsEdge)
	require.Equal(t, algo.AgentID(0), conflict.Agent1)
	require.Equal(t, algo.AgentID(1), conflict.Agent2)
}

func TestFindAllConflicts(t *testing.T) {
	paths := algo.JointPlan{
		pathOf([3]int{0, 0}, [3]int{1, 0}, [3]int{2, 0}),
		pathOf([3]int{5, 5}, [3]int{1, 0}, [3]int{2, 0}),
	}
	conflicts := algo.FindAllConflicts(paths)
	require.Len(t, conflicts, 2)
}

func TestFindFirstConflict_FinishedAgentOccupiesGoalForever(t *testing.T) {
	// Agent 0 reaches (2,0) at t=2 and stops; agent 1 arrives at (2,0)
	// at t=3, after agent 0's path has ended.
	paths := algo.JointPlan{
		pathOf([3]int{0, 0}, [3]int{1, 0}, [3]int{2, 0}),
		pathOf([3]int{2, 3}, [3]int{2, 2}, [3]int{2, 1}, [3]int{2, 0}, [3]int{2, 0}, [3]int{2, 0}),
	}
	conflict := algo.FindFirstConflict(paths)
	require.NotNil(t, conflict, "agent 0 occupies (2,0) indefinitely after finishing")
}
