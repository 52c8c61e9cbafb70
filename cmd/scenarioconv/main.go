// scenarioconv flattens a scenario's setup sections into an explicit step
// list, after dry-running it against an empty world.
package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/clanworld/internal/data"
	"github.com/l1jgo/clanworld/internal/system"
	"github.com/l1jgo/clanworld/internal/world"
)

type flatScenario struct {
	Name  string      `yaml:"name,omitempty"`
	Steps []data.Step `yaml:"steps"`
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: scenarioconv <scenario.yaml> <output.yaml>")
		os.Exit(1)
	}

	sc, err := data.LoadScenario(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	steps := sc.Expand()

	// Dry run: every step must meet its expectation.
	w := world.NewWorld(nil, nil)
	failed := 0
	for i, step := range steps {
		code := world.ErrorCode(system.ApplyStep(w, step, io.Discard))
		if code != step.Expect {
			fmt.Fprintf(os.Stderr, "step %d %s: got %q, want %q\n", i, step, code, step.Expect)
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d steps did not meet their expectation\n", failed, len(steps))
		os.Exit(1)
	}

	out, err := os.Create(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "# Flattened from %s (%d steps)\n", os.Args[1], len(steps))
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(flatScenario{Name: sc.Name, Steps: steps}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d steps to %s\n", len(steps), os.Args[2])
}
