// Package main provides instance generation for grid MAPF benchmarks.
// Generates deterministic test instances with configurable parameters.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// InstanceParams defines parameters for instance generation.
type InstanceParams struct {
	Seed          int64   `json:"seed"`
	NumAgents     int     `json:"num_agents"`
	GridWidth     int     `json:"grid_width"`
	GridHeight    int     `json:"grid_height"`
	ObstacleRatio float64 `json:"obstacle_ratio"` // Fraction of cells permanently blocked
}

// AgentSpec is one agent's start pose and goal cell.
type AgentSpec struct {
	ID        int    `json:"id"`
	StartX    int    `json:"start_x"`
	StartY    int    `json:"start_y"`
	StartFace string `json:"start_facing"`
	GoalX     int    `json:"goal_x"`
	GoalY     int    `json:"goal_y"`
}

// Instance is a complete grid MAPF problem.
type Instance struct {
	Name      string         `json:"name"`
	Params    InstanceParams `json:"params"`
	Blocked   [][2]int       `json:"blocked"`
	Agents    []AgentSpec    `json:"agents"`
	Generated string         `json:"generated"`
}

var facingNames = [4]string{"E", "S", "W", "N"}

// generateInstance creates a grid MAPF instance from parameters.
func generateInstance(params InstanceParams) *Instance {
	rng := rand.New(rand.NewSource(params.Seed))

	inst := &Instance{
		Name:      fmt.Sprintf("gridmapf_%d_%dx%d_%d", params.NumAgents, params.GridWidth, params.GridHeight, params.Seed),
		Params:    params,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}

	numCells := params.GridWidth * params.GridHeight
	occupied := make(map[[2]int]bool, numCells)

	numBlocked := int(float64(numCells) * params.ObstacleRatio)
	for len(inst.Blocked) < numBlocked {
		x, y := rng.Intn(params.GridWidth), rng.Intn(params.GridHeight)
		cell := [2]int{x, y}
		if occupied[cell] {
			continue
		}
		occupied[cell] = true
		inst.Blocked = append(inst.Blocked, cell)
	}

	randomFreeCell := func() (int, int) {
		for {
			x, y := rng.Intn(params.GridWidth), rng.Intn(params.GridHeight)
			cell := [2]int{x, y}
			if !occupied[cell] {
				return x, y
			}
		}
	}

	for i := 0; i < params.NumAgents; i++ {
		sx, sy := randomFreeCell()
		occupied[[2]int{sx, sy}] = true

		gx, gy := randomFreeCell()
		occupied[[2]int{gx, gy}] = true

		inst.Agents = append(inst.Agents, AgentSpec{
			ID:        i,
			StartX:    sx,
			StartY:    sy,
			StartFace: facingNames[rng.Intn(4)],
			GoalX:     gx,
			GoalY:     gy,
		})
	}

	return inst
}

func main() {
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	numAgents := flag.Int("agents", 10, "Number of agents")
	gridWidth := flag.Int("width", 10, "Grid width")
	gridHeight := flag.Int("height", 10, "Grid height")
	obstacleRatio := flag.Float64("obstacles", 0.1, "Fraction of cells permanently blocked")
	outputDir := flag.String("output", "testdata", "Output directory")
	scalingMode := flag.Bool("scaling", false, "Generate scaling test instances (2, 5, 10, 25, 50 agents)")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var instances []*Instance

	if *scalingMode {
		scalingSizes := []int{2, 5, 10, 25, 50}
		for _, size := range scalingSizes {
			gridSize := int(math.Ceil(math.Sqrt(float64(size)) * 4))
			if gridSize < 6 {
				gridSize = 6
			}

			params := InstanceParams{
				Seed:          *seed,
				NumAgents:     size,
				GridWidth:     gridSize,
				GridHeight:    gridSize,
				ObstacleRatio: *obstacleRatio,
			}
			instances = append(instances, generateInstance(params))
		}
	} else {
		params := InstanceParams{
			Seed:          *seed,
			NumAgents:     *numAgents,
			GridWidth:     *gridWidth,
			GridHeight:    *gridHeight,
			ObstacleRatio: *obstacleRatio,
		}
		instances = append(instances, generateInstance(params))
	}

	for _, inst := range instances {
		filename := filepath.Join(*outputDir, inst.Name+".json")
		data, err := json.MarshalIndent(inst, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling instance %s: %v\n", inst.Name, err)
			continue
		}

		if err := os.WriteFile(filename, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing instance %s: %v\n", filename, err)
			continue
		}

		fmt.Printf("Generated: %s (%d agents, %dx%d grid)\n",
			filename, inst.Params.NumAgents, inst.Params.GridWidth, inst.Params.GridHeight)
	}
}
