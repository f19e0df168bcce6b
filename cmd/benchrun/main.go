package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func main() {
	// Run all benchmarks in bench/ with benchmem.
	// Usage: go run ./cmd/benchrun
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, backend := range []string{"dragon", "goose"} {
		for _, depth := range []string{"3", "4", "5"} {
			run("go", "run", "./cmd/perft", "-backend", backend, "-depth", depth, "-label", "Initial/"+backend)
		}
		_ = run("go", "run", "./cmd/perft", "-backend", backend, "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete/"+backend)
	}

	fmt.Println("\nSearch Performance:")
	for _, backend := range []string{"dragon", "goose"} {
		_ = run("go", "run", "./cmd/searchbench", "-backend", backend, "-depth", "4")
	}
	os.Exit(0)
}
