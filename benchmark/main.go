// Package main benchmarks the ingestion modes of the hammer CLI.
// For each repository it times a first init-project in diffed mode and in
// full-recompute mode, each against a fresh SQLite database, then averages
// the no-op update-project runs that follow.
//
// Prerequisites:
// - hammer binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git-who
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
)

// BenchmarkResult holds the timings of one repository and ingestion mode.
type BenchmarkResult struct {
	Repository string
	Mode       string
	InitTime   string
	UpdateTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase   string
	Timeout    time.Duration
	UpdateRuns int
	TestRepos  []string
	Modes      map[string][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:   os.Args[1],
		Timeout:    30 * time.Minute,
		UpdateRuns: 3,
		TestRepos:  []string{"csv-parser", "fd", "git-who"},
		Modes: map[string][]string{
			"diffed": nil,
			"full":   {"--full-recompute"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that hammer binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("hammer"); err != nil {
		return fmt.Errorf("hammer binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks executes every mode across the configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d update runs\n",
		len(config.TestRepos), config.Timeout, config.UpdateRuns)

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, mode := range []string{"diffed", "full"} {
			fmt.Printf("Benchmarking %s (%s)\n", repo, mode)
			results = append(results, runBenchmarkSuite(config, repo, repoPath, mode))
		}
	}
	return results
}

// runBenchmarkSuite times init-project once and update-project UpdateRuns times on a fresh database
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, mode string) BenchmarkResult {
	result := BenchmarkResult{Repository: repo, Mode: mode, InitTime: "TIMEOUT", UpdateTime: "TIMEOUT"}

	dbDir, err := os.MkdirTemp("", "hammer-benchmark-*")
	if err != nil {
		fmt.Printf("  Failed to create database dir: %v\n", err)
		return result
	}
	defer func() { _ = os.RemoveAll(dbDir) }()
	dbArgs := []string{"--db-backend", "sqlite", "--db-connect", filepath.Join(dbDir, "hammer.db")}

	initArgs := append([]string{"init-project", repo, repoPath}, dbArgs...)
	initArgs = append(initArgs, config.Modes[mode]...)
	elapsed, ok := runTimed(config, initArgs)
	if !ok {
		return result
	}
	result.InitTime = fmt.Sprintf("%.3fs", elapsed)

	var sum float64
	var runs int
	for range config.UpdateRuns {
		if t, ok := runTimed(config, append([]string{"update-project", repo}, dbArgs...)); ok {
			sum += t
			runs++
		}
	}
	if runs > 0 {
		result.UpdateTime = fmt.Sprintf("%.3fs", sum/float64(runs))
	}

	fmt.Printf("  Init: %s, Update average: %s\n", result.InitTime, result.UpdateTime)
	return result
}

// runTimed runs hammer with args and returns the elapsed seconds when it succeeds in time
func runTimed(config BenchmarkConfig, args []string) (float64, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, "hammer", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("  hammer %v failed: %v\n%s", args[0], err, output)
		return 0, false
	}
	return time.Since(start).Seconds(), true
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/hammer_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "mode", "init_time", "update_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Mode, result.InitTime, result.UpdateTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results as a table
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	table := tablewriter.NewWriter(os.Stdout)
	defer func() { _ = table.Close() }()
	table.Header([]string{"Repository", "Mode", "Init", "Update Avg"})
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Repository, r.Mode, r.InitTime, r.UpdateTime})
	}
	if err := table.Bulk(rows); err != nil {
		fmt.Printf("Failed to build summary table: %v\n", err)
		return
	}
	if err := table.Render(); err != nil {
		fmt.Printf("Failed to render summary table: %v\n", err)
	}
}
