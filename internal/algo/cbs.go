package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/gridmapf/internal/core"
)

// rootBattery is the battery budget CBS hands to the low-level planner
// for the root paths and for every replan — CBS
// itself has no notion of battery beyond passing this constant
// through, matching the reference solver's current_battery=100.
const rootBattery = 100

// CBS is a best-first Conflict-Based Search over the constraint tree.
type CBS struct {
	MaxTime int
}

// NewCBS creates a CBS solver with the given search horizon.
func NewCBS(maxTime int) *CBS {
	return &CBS{MaxTime: maxTime}
}

func (c *CBS) Name() string { return "CBS" }

// ctNode is one node of the constraint tree: an additive constraint
// list and the joint plan consistent with it. Children receive a
// fresh copy of paths with exactly one agent's path replaced, and a
// constraint list that extends the parent's.
type ctNode struct {
	constraints []Constraint
	paths       JointPlan
	cost        int
	index       int // heap.Interface bookkeeping
}

// ctHeap is a min-heap on cost with no secondary key. Which of several
// equal-cost nodes is popped first follows container/heap's sift
// order, not insertion order; that order is fixed for a fixed
// push/pop sequence, giving CBS a deterministic expansion order for a
// fixed input.
type ctHeap []*ctNode

func (h ctHeap) Len() int            { return len(h) }
func (h ctHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h ctHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *ctHeap) Push(x any) {
	n := x.(*ctNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *ctHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Solve runs CBS to completion: plan every agent independently at the
// root, then repeatedly pop the cheapest node, check it for
// conflicts, and branch on the first one found. Returns the first
// conflict-free node's paths, or (nil, false) once the tree is
// exhausted.
func (c *CBS) Solve(grid *core.Grid, starts []core.Pose, goals []core.Cell) (JointPlan, bool) {
	n := len(starts)

	root := &ctNode{paths: make(JointPlan, n)}
	for i := 0; i < n; i++ {
		path, ok := SpaceTimeAStar(grid, starts[i], goals[i], nil, AgentID(i), rootBattery, DefaultMinBattery, c.MaxTime)
		if !ok {
			return nil, false
		}
		root.paths[i] = path
	}
	root.cost = sumCost(root.paths)

	open := &ctHeap{}
	heap.Init(open)
	heap.Push(open, root)

	for open.Len() > 0 {
		node := heap.Pop(open).(*ctNode)

		conflict := FindFirstConflict(node.paths)
		if conflict == nil {
			return node.paths, true
		}

		for _, child := range c.branch(grid, starts, goals, node, conflict) {
			heap.Push(open, child)
		}
	}

	return nil, false
}

// branch produces the (up to two) children of node for the given
// conflict, each adding exactly one new constraint and replanning only
// the newly-constrained agent. A child whose replan fails is dropped.
func (c *CBS) branch(grid *core.Grid, starts []core.Pose, goals []core.Cell, node *ctNode, conflict *Conflict) []*ctNode {
	var newConstraints [2]Constraint
	if conflict.IsEdge {
		newConstraints[0] = Constraint{
			Time: conflict.Time, Agent: conflict.Agent1,
			X: conflict.X, Y: conflict.Y, NextX: conflict.NextX, NextY: conflict.NextY,
			IsVertex: false,
		}
		newConstraints[1] = Constraint{
			Time: conflict.Time, Agent: conflict.Agent2,
			X: conflict.NextX, Y: conflict.NextY, NextX: conflict.X, NextY: conflict.Y,
			IsVertex: false,
		}
	} else {
		newConstraints[0] = Constraint{Time: conflict.Time, Agent: conflict.Agent1, X: conflict.X, Y: conflict.Y, IsVertex: true}
		newConstraints[1] = Constraint{Time: conflict.Time, Agent: conflict.Agent2, X: conflict.X, Y: conflict.Y, IsVertex: true}
	}

	children := make([]*ctNode, 0, 2)
	for _, nc := range newConstraints {
		constraints := append(append([]Constraint{}, node.constraints...), nc)

		path, ok := SpaceTimeAStar(grid, starts[nc.Agent], goals[nc.Agent], constraints, nc.Agent, rootBattery, DefaultMinBattery, c.MaxTime)
		if !ok {
			continue
		}

		paths := make(JointPlan, len(node.paths))
		copy(paths, node.paths)
		paths[nc.Agent] = path

		children = append(children, &ctNode{
			constraints: constraints,
			paths:       paths,
			cost:        sumCost(paths),
		})
	}
	return children
}

func sumCost(paths JointPlan) int {
	total := 0
	for _, p := range paths {
		total += p.Cost()
	}
	return total
}
