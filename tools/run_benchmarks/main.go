// Package main provides a benchmark runner for the grid MAPF solvers.
// Runs every solver against generated instances and collects metrics.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/gridmapf/internal/algo"
	"github.com/elektrokombinacija/gridmapf/internal/core"
)

// InstanceFile mirrors the JSON schema written by gen_instances.
type InstanceFile struct {
	Name   string `json:"name"`
	Params struct {
		Seed       int64 `json:"seed"`
		NumAgents  int   `json:"num_agents"`
		GridWidth  int   `json:"grid_width"`
		GridHeight int   `json:"grid_height"`
	} `json:"params"`
	Blocked [][2]int `json:"blocked"`
	Agents  []struct {
		ID        int    `json:"id"`
		StartX    int    `json:"start_x"`
		StartY    int    `json:"start_y"`
		StartFace string `json:"start_facing"`
		GoalX     int    `json:"goal_x"`
		GoalY     int    `json:"goal_y"`
	} `json:"agents"`
}

var faceByName = map[string]core.Facing{
	"E": core.East, "S": core.South, "W": core.West, "N": core.North,
}

func (f *InstanceFile) toGridAndAgents() (*core.Grid, []core.Pose, []core.Cell) {
	grid := core.NewGridWithBlocked(f.Params.GridWidth, f.Params.GridHeight, f.Blocked)

	starts := make([]core.Pose, len(f.Agents))
	goals := make([]core.Cell, len(f.Agents))
	for i, a := range f.Agents {
		starts[i] = core.Pose{X: a.StartX, Y: a.StartY, Facing: faceByName[a.StartFace]}
		goals[i] = core.Cell{X: a.GoalX, Y: a.GoalY}
	}
	return grid, starts, goals
}

// BenchmarkResult stores results from a single solver run.
type BenchmarkResult struct {
	Timestamp   string  `json:"timestamp"`
	CommitHash  string  `json:"commit_hash"`
	GoVersion   string  `json:"go_version"`
	OS          string  `json:"os"`
	Arch        string  `json:"arch"`
	Instance    string  `json:"instance"`
	NumAgents   int     `json:"num_agents"`
	GridSize    string  `json:"grid_size"`
	Solver      string  `json:"solver"`
	RuntimeMs   float64 `json:"runtime_ms"`
	Success     bool    `json:"success"`
	SumOfCosts  int     `json:"sum_of_costs"`
	ConflictFree bool   `json:"conflict_free"`
}

// SolverMetrics holds per-solver aggregated metrics.
type SolverMetrics struct {
	Name           string
	TotalRuns      int
	Successes      int
	TotalRuntimeMs float64
	TotalCost      int
}

const maxTime = 150

func newSolver(name string) algo.Solver {
	switch name {
	case "CBS":
		return algo.NewCBS(maxTime)
	case "Prioritized":
		return algo.NewPrioritized(maxTime)
	default:
		return nil
	}
}

var solverNames = []string{"CBS", "Prioritized"}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func loadInstance(path string) (*InstanceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var inst InstanceFile
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, err
	}

	return &inst, nil
}

// runSolver executes one solver against one instance in-process and
// measures wall-clock time.
func runSolver(inst *InstanceFile, solverName string) *BenchmarkResult {
	result := &BenchmarkResult{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: getGitCommit(),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Instance:   inst.Name,
		NumAgents:  inst.Params.NumAgents,
		GridSize:   fmt.Sprintf("%dx%d", inst.Params.GridWidth, inst.Params.GridHeight),
		Solver:     solverName,
	}

	solver := newSolver(solverName)
	if solver == nil {
		return result
	}

	grid, starts, goals := inst.toGridAndAgents()
	if err := algo.ValidateInstance(grid, starts, goals); err != nil {
		fmt.Fprintf(os.Stderr, "Instance %s invalid: %v\n", inst.Name, err)
		return result
	}

	startTime := time.Now()
	plan, ok := solver.Solve(grid, starts, goals)
	result.RuntimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
	result.Success = ok

	if ok {
		for _, p := range plan {
			result.SumOfCosts += p.Cost()
		}
		result.ConflictFree = algo.FindFirstConflict(plan) == nil
	}

	return result
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"instance", "num_agents", "grid_size", "solver",
		"runtime_ms", "success", "sum_of_costs", "conflict_free",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Instance, fmt.Sprintf("%d", r.NumAgents),
			r.GridSize, r.Solver,
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%t", r.Success),
			fmt.Sprintf("%d", r.SumOfCosts), fmt.Sprintf("%t", r.ConflictFree),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(results []*BenchmarkResult) {
	metrics := make(map[string]*SolverMetrics)
	for _, r := range results {
		m, ok := metrics[r.Solver]
		if !ok {
			m = &SolverMetrics{Name: r.Solver}
			metrics[r.Solver] = m
		}
		m.TotalRuns++
		if r.Success {
			m.Successes++
			m.TotalRuntimeMs += r.RuntimeMs
			m.TotalCost += r.SumOfCosts
		}
	}

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-15s %8s %8s %12s %10s\n",
		"Solver", "Runs", "Success", "Avg Time(ms)", "AvgCost")
	fmt.Println(strings.Repeat("-", 58))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgTime := 0.0
		avgCost := 0.0
		if m.Successes > 0 {
			avgTime = m.TotalRuntimeMs / float64(m.Successes)
			avgCost = float64(m.TotalCost) / float64(m.Successes)
		}
		fmt.Printf("%-15s %8d %8d %12.2f %10.2f\n",
			m.Name, m.TotalRuns, m.Successes, avgTime, avgCost)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "Directory containing instance JSON files")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "Output CSV file")
	solverFilter := flag.String("solver", "", "Run only specific solver (comma-separated)")
	agentFilter := flag.Int("agents", 0, "Run only instances with this many agents (0 = all)")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	outputDir := filepath.Dir(*outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	pattern := filepath.Join(*inputDir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding instance files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No instance files found in %s\n", *inputDir)
		fmt.Fprintf(os.Stderr, "Run gen_instances first: go run ./tools/gen_instances -scaling -output testdata\n")
		os.Exit(1)
	}

	activeSolvers := solverNames
	if *solverFilter != "" {
		activeSolvers = strings.Split(*solverFilter, ",")
	}

	var results []*BenchmarkResult
	totalRuns := len(files) * len(activeSolvers)
	currentRun := 0

	fmt.Printf("Running benchmarks: %d instances x %d solvers = %d runs\n",
		len(files), len(activeSolvers), totalRuns)
	fmt.Println()

	for _, file := range files {
		inst, err := loadInstance(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}

		if *agentFilter > 0 && inst.Params.NumAgents != *agentFilter {
			continue
		}

		for _, solverName := range activeSolvers {
			currentRun++
			if *verbose {
				fmt.Printf("[%d/%d] %s / %s ... ", currentRun, totalRuns, inst.Name, solverName)
			} else {
				fmt.Printf("\r[%d/%d] Running...", currentRun, totalRuns)
			}

			result := runSolver(inst, solverName)
			results = append(results, result)

			if *verbose {
				if result.Success {
					fmt.Printf("OK (%.2fms, cost=%d, conflict-free=%v)\n",
						result.RuntimeMs, result.SumOfCosts, result.ConflictFree)
				} else {
					fmt.Printf("FAILED\n")
				}
			}
		}
	}

	fmt.Println()

	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(results)
}
