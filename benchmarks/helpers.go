// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v3"

	"github.com/comalice/vectorx/internal/scenario"
	"github.com/comalice/vectorx/testutil"
)

// Sizes are the element counts each benchmark runs at.
var Sizes = []int{16, 256, 4096}

// Inline is the hybrid inline capacity used throughout.
const Inline = 16

// GenTargets returns every vector target, with the fixed vector sized to hold n
// elements.
func GenTargets(n int) []testutil.Target[int] {
	return testutil.Targets[int](n, Inline)
}

// GenSteps returns a deterministic mix of n steps that never violates a
// precondition: every position is inside the vector at the time it is used.
func GenSteps(n int, seed uint64) []scenario.Step {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	steps := make([]scenario.Step, 0, n)
	size := 0
	for len(steps) < n {
		v := r.IntN(1000)
		switch k := r.IntN(10); {
		case size == 0 || k < 4:
			steps = append(steps, scenario.Step{Op: scenario.OpPushBack, Value: &v})
			size++
		case k < 6:
			steps = append(steps, scenario.Step{Op: scenario.OpInsert, Pos: r.IntN(size + 1), Value: &v})
			size++
		case k < 8:
			steps = append(steps, scenario.Step{Op: scenario.OpErase, Pos: r.IntN(size)})
			size--
		case k < 9:
			steps = append(steps, scenario.Step{Op: scenario.OpGet, Pos: r.IntN(size)})
		default:
			steps = append(steps, scenario.Step{Op: scenario.OpPopBack})
			size--
		}
	}
	return steps
}

// GenScenario wraps GenSteps in a scenario whose fixed capacity fits every
// step.
func GenScenario(n int, seed uint64) *scenario.Scenario {
	return &scenario.Scenario{
		Name:           fmt.Sprintf("random_%d", n),
		InlineCapacity: Inline,
		FixedCapacity:  n,
		Steps:          GenSteps(n, seed),
	}
}

// GenScenarioYAML returns GenScenario(n, seed) encoded as YAML.
func GenScenarioYAML(n int, seed uint64) []byte {
	data, err := yaml.Marshal(GenScenario(n, seed))
	if err != nil {
		panic(err)
	}
	return data
}
