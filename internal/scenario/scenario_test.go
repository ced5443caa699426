package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	sc, err := Load("testdata/basic.yaml")
	require.NoError(t, err)
	assert.Equal(t, "basic", sc.Name)
	assert.Equal(t, 4, sc.InlineCapacity)
	assert.Equal(t, []int{1, 2, 3}, sc.Initial)
	require.Len(t, sc.Steps, 13)
	assert.Equal(t, OpErase, sc.Steps[6].Op)
	require.NotNil(t, sc.Steps[6].Last)
	assert.Equal(t, 4, *sc.Steps[6].Last)
}

func TestLoadJSONC(t *testing.T) {
	sc, err := Load("testdata/errors.jsonc")
	require.NoError(t, err)
	assert.Equal(t, "errors", sc.Name)
	assert.Equal(t, 2, sc.FixedCapacity)
	assert.Len(t, sc.Steps, 6)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/unknown_op.yaml")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load("testdata/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	txt := filepath.Join(dir, "plan.txt")
	require.NoError(t, os.WriteFile(txt, []byte("steps: []"), 0o644))
	_, err = Load(txt)
	assert.ErrorContains(t, err, "unsupported extension")

	unknown := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("name: x\nsteps: []\ncolour: red\n"), 0o644))
	_, err = Load(unknown)
	assert.Error(t, err, "unknown fields are rejected")

	unnamed := filepath.Join(dir, "unnamed.json")
	require.NoError(t, os.WriteFile(unnamed, []byte(`{"steps": [{"op": "clear"}]}`), 0o644))
	sc, err := Load(unnamed)
	require.NoError(t, err)
	assert.Equal(t, "unnamed", sc.Name)

	_, err = LoadAll([]string{"testdata/basic.yaml", "testdata/unknown_op.yaml", "testdata/missing.yaml"})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunBasic(t *testing.T) {
	sc, err := Load("testdata/basic.yaml")
	require.NoError(t, err)

	res, err := NewRunner(8, 64, nil).Run(context.Background(), sc)
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.True(t, res.Passed())
	require.Len(t, res.Targets, 4)

	names := []string{TargetSlice, TargetBounded, TargetFixed, TargetHybrid}
	for i, tr := range res.Targets {
		assert.Equal(t, names[i], tr.Target)
		assert.Equal(t, []int{0, 20, 21, 9, 9}, tr.Final, tr.Target)
		assert.Empty(t, tr.Mismatches, tr.Target)
	}

	ref := res.Targets[0].Steps
	assert.Equal(t, 1, ref[2].Offset)
	assert.Equal(t, 0, ref[3].Offset)
	assert.Equal(t, 5, ref[4].Offset)
	assert.Equal(t, 3, ref[5].Offset)
	assert.Equal(t, 1, ref[6].Offset)
	assert.Equal(t, 21, ref[7].Value)
	assert.Equal(t, 20, ref[12].Value)
	assert.Equal(t, -1, ref[0].Offset)

	fixed := res.Targets[2]
	for _, st := range fixed.Steps {
		assert.Equal(t, 16, st.Cap, "scenario capacity overrides the runner's")
	}
	assert.Equal(t, "heap", res.Targets[3].Location)
}

func TestRunFailures(t *testing.T) {
	sc, err := Load("testdata/errors.jsonc")
	require.NoError(t, err)

	res, err := NewRunner(4, 8, nil).Run(context.Background(), sc)
	require.NoError(t, err)
	assert.False(t, res.Passed())

	ref, bounded, fixed, hybrid := res.Targets[0], res.Targets[1], res.Targets[2], res.Targets[3]
	assert.Empty(t, ref.Steps[0].Failure)
	assert.Equal(t, FailOutOfRange, ref.Steps[1].Failure)
	assert.Equal(t, FailOutOfBounds, ref.Steps[2].Failure)
	assert.Equal(t, FailPrecondition, ref.Steps[3].Failure)
	assert.Equal(t, FailPrecondition, ref.Steps[5].Failure)

	assert.True(t, bounded.Passed(), bounded.Mismatches)
	assert.Contains(t, bounded.Report, "index out of bounds; 7 for a vector of size 3")
	assert.Contains(t, bounded.Report, "[errors]", "construction site carries the scenario label")
	assert.True(t, hybrid.Passed(), hybrid.Mismatches)

	require.False(t, fixed.Passed())
	assert.Equal(t, FailPrecondition, fixed.Steps[0].Failure)
	assert.Contains(t, fixed.Mismatches[0], `step 0 (push_back): failure "precondition", want ""`)
}

func TestRunRejectsSmallFixedCapacity(t *testing.T) {
	sc := &Scenario{Name: "big", FixedCapacity: 1, Initial: []int{1, 2}}
	_, err := NewRunner(2, 2, nil).Run(context.Background(), sc)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRunAll(t *testing.T) {
	scenarios, err := LoadAll([]string{"testdata/basic.yaml", "testdata/errors.jsonc"})
	require.NoError(t, err)

	r := NewRunner(4, 32, nil)
	r.Concurrency = 2
	results, err := r.RunAll(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "basic", results[0].Scenario)
	assert.Equal(t, "errors", results[1].Scenario)
	assert.NotEqual(t, results[0].RunID, results[1].RunID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.RunAll(ctx, scenarios)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExampleScenariosPass(t *testing.T) {
	paths, err := filepath.Glob("../../examples/scenarios/*")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	scenarios, err := LoadAll(paths)
	require.NoError(t, err)
	results, err := NewRunner(8, 64, nil).RunAll(context.Background(), scenarios)
	require.NoError(t, err)
	for _, res := range results {
		for _, tr := range res.Targets {
			assert.Empty(t, tr.Mismatches, "%s/%s", res.Scenario, tr.Target)
		}
	}
}
