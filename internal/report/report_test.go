package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comalice/vectorx/internal/scenario"
)

func sampleResult() scenario.Result {
	return scenario.Result{
		RunID:    "run-1",
		Scenario: "sample",
		Started:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Targets: []scenario.TargetResult{
			{Target: scenario.TargetSlice, Final: []int{1, 2}, Steps: []scenario.StepResult{{Op: "push_back", Offset: -1, Len: 2, Cap: 2}}},
			{Target: scenario.TargetHybrid, Final: []int{1, 2}, Location: "inline", Steps: []scenario.StepResult{{Op: "push_back", Offset: -1, Len: 2, Cap: 4}}},
			{
				Target:     scenario.TargetFixed,
				Final:      []int{1},
				Steps:      []scenario.StepResult{{Op: "push_back", Offset: -1, Len: 1, Cap: 1, Failure: "precondition"}},
				Mismatches: []string{"final [1], want [1 2]"},
			},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, []scenario.Result{sampleResult()}))
	out := buf.String()
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "reference")
	assert.Contains(t, out, "inline")
	assert.Contains(t, out, "{1, 2}")
	assert.Contains(t, out, "1 mismatches")
	assert.Contains(t, out, "sample/fixed: final [1], want [1 2]\n")
	assert.Contains(t, out, "+--", "non-terminal output uses the ASCII style")

	buf.Reset()
	require.NoError(t, Write(&buf, FormatTable, nil))
	assert.Equal(t, "(no scenarios)\n", buf.String())
}

func TestWriteJSONAndYAML(t *testing.T) {
	res := []scenario.Result{sampleResult()}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, res))
	var fromJSON []scenario.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, res, fromJSON)

	buf.Reset()
	require.NoError(t, Write(&buf, FormatYAML, res))
	assert.Contains(t, buf.String(), "run_id: run-1")
	var fromYAML []scenario.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "sample", fromYAML[0].Scenario)

	assert.Error(t, Write(&buf, "xml", res))
	assert.True(t, ValidFormat(FormatYAML))
	assert.False(t, ValidFormat("xml"))
}

func TestWriteGrowth(t *testing.T) {
	rows := []GrowthRow{
		{Step: 0, Op: "new", Len: 0, Cap: 4, Location: "inline"},
		{Step: 1, Op: "push_back", Len: 5, Cap: 8, Location: "heap"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteGrowth(&buf, FormatTable, rows))
	assert.Contains(t, buf.String(), "push_back")
	assert.Contains(t, buf.String(), "heap")

	buf.Reset()
	require.NoError(t, WriteGrowth(&buf, FormatJSON, rows))
	assert.Contains(t, buf.String(), `"location": "heap"`)
}

func TestPersisters(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			p, err := NewPersister(dir+"/results", format)
			require.NoError(t, err)

			ctx := context.Background()
			res := sampleResult()
			require.NoError(t, p.Save(ctx, res))

			loaded, err := p.Load(ctx, "sample")
			require.NoError(t, err)
			assert.Equal(t, res.RunID, loaded.RunID)
			assert.Equal(t, res.Targets, loaded.Targets)
			assert.True(t, res.Started.Equal(loaded.Started))

			_, err = p.Load(ctx, "nonexistent")
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}

	_, err := NewPersister(t.TempDir(), "xml")
	assert.Error(t, err)
}

func TestWriteGrowthDOT(t *testing.T) {
	rows := []GrowthRow{
		{Step: 0, Op: "new", Len: 0, Cap: 2, Location: "inline"},
		{Step: 3, Op: "push_back", Len: 3, Cap: 4, Location: "heap"},
		{Step: 5, Op: "push_back", Len: 5, Cap: 8, Location: "heap"},
		{Step: 9, Op: "shrink_to_fit", Len: 2, Cap: 2, Location: "inline"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteGrowthDOT(&buf, rows))
	dot := buf.String()

	assert.True(t, strings.HasPrefix(dot, "digraph Growth {"))
	assert.Equal(t, 1, strings.Count(dot, "subgraph cluster_inline"))
	assert.Equal(t, 1, strings.Count(dot, "subgraph cluster_heap"))
	assert.Contains(t, dot, `"step5" [label="push_back\nlen 5 / cap 8"];`)
	assert.Contains(t, dot, `"step0" -> "step3" [label="push_back" color=red penwidth=2];`)
	assert.Contains(t, dot, `"step3" -> "step5" [label="push_back"];`)
	assert.Contains(t, dot, `"step5" -> "step9" [label="shrink_to_fit" color=red penwidth=2];`)
}
