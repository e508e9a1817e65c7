package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/gridmapf/internal/core"
)

// DefaultMinBattery is the reserved-for-future minimum-battery
// threshold. The low-level planner accepts it but never consults it —
// see the battery semantics note in the package docs.
const DefaultMinBattery = 10

// DefaultMaxTime is the default search horizon.
const DefaultMaxTime = 300

// stState is the space-time key a state is closed on: (time, x, y,
// facing). Two nodes sharing a key are interchangeable for search
// purposes, so only the first popped is ever expanded.
type stState struct {
	t      int
	x, y   int
	facing core.Facing
}

// astarNode is one entry in the low-level A* frontier.
type astarNode struct {
	state   stState
	g       int
	f       int
	battery int
	parent  *astarNode
	index   int // heap.Interface bookkeeping
}

// astarHeap is a min-heap on f, tie-broken by larger g (prefer deeper
// states at equal f) — matching the teacher's astarHeap and the
// reference implementation's State.__lt__.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].g > h[j].g
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

func manhattan(x1, y1, x2, y2 int) int {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// isConstrained reports whether moving from (curX, curY) to (nextX,
// nextY) arriving at nextTime violates any constraint in the (already
// agent-filtered) list. The three in-place actions (wait, rotate
// left, rotate right) call this with curX==nextX, curY==nextY, which
// uniformly exercises the edge-constraint branch against the identity
// transition.
func isConstrained(curX, curY, nextX, nextY, nextTime int, constraints []Constraint) bool {
	for _, c := range constraints {
		if c.Time != nextTime {
			continue
		}
		if c.IsVertex {
			if c.X == nextX && c.Y == nextY {
				return true
			}
			continue
		}
		if c.X == curX && c.Y == curY && c.NextX == nextX && c.NextY == nextY {
			return true
		}
	}
	return false
}

// SpaceTimeAStar finds a cost-optimal path for a single agent through
// an (x, y, facing, time) state space, obeying per-agent constraints
// and a battery budget. Actions are wait, rotate-left, rotate-right,
// and move-forward, each costing one g and one time tick and draining
// one unit of battery. Returns (nil, false) if the goal is unreachable
// within maxTime or before the battery is exhausted.
//
// minBattery is accepted for interface parity with the reference
// design but is not consulted during search (see package docs).
func SpaceTimeAStar(
	grid *core.Grid,
	start core.Pose,
	goal core.Cell,
	constraints []Constraint,
	agent AgentID,
	initialBattery int,
	minBattery int,
	maxTime int,
) (core.Path, bool) {
	agentConstraints := constraintsFor(constraints, agent)

	open := &astarHeap{}
	heap.Init(open)

	startH := manhattan(start.X, start.Y, goal.X, goal.Y)
	heap.Push(open, &astarNode{
		state:   stState{t: 0, x: start.X, y: start.Y, facing: start.Facing},
		g:       0,
		f:       startH,
		battery: initialBattery,
	})

	closed := make(map[stState]bool)

	for open.Len() > 0 {
		curr := heap.Pop(open).(*astarNode)

		if closed[curr.state] {
			continue
		}
		closed[curr.state] = true

		if curr.state.x == goal.X && curr.state.y == goal.Y {
			return reconstructPath(curr), true
		}

		if curr.state.t >= maxTime || curr.battery <= 0 {
			continue
		}

		nextT := curr.state.t + 1
		nextBattery := curr.battery - 1
		x, y, d := curr.state.x, curr.state.y, curr.state.facing

		// 1. Wait.
		pushIfOpen(open, closed, isConstrained(x, y, x, y, nextT, agentConstraints),
			stState{t: nextT, x: x, y: y, facing: d}, curr, curr.g+1, manhattan(x, y, goal.X, goal.Y), nextBattery)

		// 2. Rotate left.
		left := d.RotateLeft()
		pushIfOpen(open, closed, isConstrained(x, y, x, y, nextT, agentConstraints),
			stState{t: nextT, x: x, y: y, facing: left}, curr, curr.g+1, manhattan(x, y, goal.X, goal.Y), nextBattery)

		// 3. Rotate right.
		right := d.RotateRight()
		pushIfOpen(open, closed, isConstrained(x, y, x, y, nextT, agentConstraints),
			stState{t: nextT, x: x, y: y, facing: right}, curr, curr.g+1, manhattan(x, y, goal.X, goal.Y), nextBattery)

		// 4. Move forward.
		dx, dy := d.Delta()
		nx, ny := x+dx, y+dy
		if grid.Traversable(nx, ny) && !isConstrained(x, y, nx, ny, nextT, agentConstraints) {
			if !closed[stState{t: nextT, x: nx, y: ny, facing: d}] {
				heap.Push(open, &astarNode{
					state:   stState{t: nextT, x: nx, y: ny, facing: d},
					g:       curr.g + 1,
					f:       curr.g + 1 + manhattan(nx, ny, goal.X, goal.Y),
					battery: nextBattery,
					parent:  curr,
				})
			}
		}
	}

	return nil, false
}

// pushIfOpen pushes the wait/rotate successor described by state onto
// open, unless it is constrained or already closed.
func pushIfOpen(open *astarHeap, closed map[stState]bool, constrained bool, state stState, parent *astarNode, g, h, battery int) {
	if constrained || closed[state] {
		return
	}
	heap.Push(open, &astarNode{state: state, g: g, f: g + h, battery: battery, parent: parent})
}

// reconstructPath walks the parent chain from the goal node back to
// the start and reverses it into a time-ordered Path.
func reconstructPath(node *astarNode) core.Path {
	var path core.Path
	for n := node; n != nil; n = n.parent {
		path = append(core.Path{{X: n.state.x, Y: n.state.y, Facing: n.state.facing, T: n.state.t}}, path...)
	}
	return path
}
