package algo

// FindFirstConflict scans a joint plan for the earliest collision and
// returns it, or nil if the plan is already conflict-free. Agents
// that have reached their goal are treated as occupying their final
// pose forever (core.Path.At handles this). Ordering: conflicts at a
// smaller time always win; within a time step, vertex conflicts are
// checked before edge conflicts; ties within a category are broken by
// the lowest agent-id pair, since agents are scanned in ascending
// order.
func FindFirstConflict(paths JointPlan) *Conflict {
	horizon := 0
	for _, p := range paths {
		if p.Len() > horizon {
			horizon = p.Len()
		}
	}

	for t := 0; t < horizon; t++ {
		if c := vertexConflictAt(paths, t); c != nil {
			return c
		}
		if t > 0 {
			if c := edgeConflictAt(paths, t); c != nil {
				return c
			}
		}
	}
	return nil
}

// FindAllConflicts returns every conflict in the joint plan, in the
// same time/category/agent-pair order FindFirstConflict would visit
// them. Not used by CBS itself — CBS only ever needs the first
// conflict — but useful for diagnostics and tests that want to assert
// on the full conflict set at once.
func FindAllConflicts(paths JointPlan) []*Conflict {
	horizon := 0
	for _, p := range paths {
		if p.Len() > horizon {
			horizon = p.Len()
		}
	}

	var conflicts []*Conflict
	for t := 0; t < horizon; t++ {
		conflicts = append(conflicts, allVertexConflictsAt(paths, t)...)
		if t > 0 {
			conflicts = append(conflicts, allEdgeConflictsAt(paths, t)...)
		}
	}
	return conflicts
}

func vertexConflictAt(paths JointPlan, t int) *Conflict {
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			pi, pj := paths[i].At(t), paths[j].At(t)
			if pi == pj {
				return &Conflict{Time: t, Agent1: AgentID(i), Agent2: AgentID(j), X: pi.X, Y: pi.Y}
			}
		}
	}
	return nil
}

func allVertexConflictsAt(paths JointPlan, t int) []*Conflict {
	var out []*Conflict
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			pi, pj := paths[i].At(t), paths[j].At(t)
			if pi == pj {
				out = append(out, &Conflict{Time: t, Agent1: AgentID(i), Agent2: AgentID(j), X: pi.X, Y: pi.Y})
			}
		}
	}
	return out
}

func edgeConflictAt(paths JointPlan, t int) *Conflict {
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			if c := edgeConflictBetween(paths, i, j, t); c != nil {
				return c
			}
		}
	}
	return nil
}

func allEdgeConflictsAt(paths JointPlan, t int) []*Conflict {
	var out []*Conflict
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			if c := edgeConflictBetween(paths, i, j, t); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// edgeConflictBetween checks whether agents i and j (i < j) swap
// across the same edge between t-1 and t.
func edgeConflictBetween(paths JointPlan, i, j, t int) *Conflict {
	prevI, currI := paths[i].At(t-1), paths[i].At(t)
	prevJ, currJ := paths[j].At(t-1), paths[j].At(t)

	if prevI == currJ && currI == prevJ {
		return &Conflict{
			Time: t, Agent1: AgentID(i), Agent2: AgentID(j),
			X: prevI.X, Y: prevI.Y, NextX: currI.X, NextY: currI.Y,
			IsEdge: true,
		}
	}
	return nil
}
