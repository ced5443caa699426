package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/comalice/vectorx"
	"github.com/comalice/vectorx/bounded"
	"github.com/comalice/vectorx/fixed"
	"github.com/comalice/vectorx/hybrid"
	"github.com/comalice/vectorx/internal/primitives"
)

// Failure kinds recorded when a step does not complete normally.
const (
	FailPrecondition = "precondition"
	FailOutOfRange   = "out_of_range"
	FailOutOfBounds  = "out_of_bounds"
	FailUnsupported  = "unsupported"
)

// Target names, in the order they appear in a Result.
const (
	TargetSlice   = "slice"
	TargetBounded = "bounded"
	TargetFixed   = "fixed"
	TargetHybrid  = "hybrid"
)

// StepResult is what one step did to one target.
type StepResult struct {
	Op string `json:"op" yaml:"op"`
	// Offset is the position returned by insert and erase, -1 otherwise.
	Offset int `json:"offset" yaml:"offset"`
	// Value is the element read by get and at.
	Value   int    `json:"value,omitempty" yaml:"value,omitempty"`
	Len     int    `json:"len" yaml:"len"`
	Cap     int    `json:"cap" yaml:"cap"`
	Failure string `json:"failure,omitempty" yaml:"failure,omitempty"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// TargetResult is a full replay on one vector variant.
type TargetResult struct {
	Target   string       `json:"target" yaml:"target"`
	Steps    []StepResult `json:"steps" yaml:"steps"`
	Final    []int        `json:"final" yaml:"final"`
	Location string       `json:"location,omitempty" yaml:"location,omitempty"`
	// Report holds the out-of-bounds reports a bounded vector wrote.
	Report     string   `json:"report,omitempty" yaml:"report,omitempty"`
	Mismatches []string `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

// Passed reports whether the target behaved like the reference.
func (r TargetResult) Passed() bool { return len(r.Mismatches) == 0 }

// Result is one scenario replayed on every target.
type Result struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	Scenario string         `json:"scenario" yaml:"scenario"`
	Started  time.Time      `json:"started" yaml:"started"`
	Targets  []TargetResult `json:"targets" yaml:"targets"`
}

// Passed reports whether every target matched the reference.
func (r Result) Passed() bool {
	for _, t := range r.Targets {
		if !t.Passed() {
			return false
		}
	}
	return true
}

// Runner replays scenarios.
type Runner struct {
	InlineCapacity int
	FixedCapacity  int
	// Concurrency bounds RunAll; zero means GOMAXPROCS.
	Concurrency int
	Logger      *slog.Logger
}

// NewRunner returns a Runner with the given default capacities.
func NewRunner(inline, fixedCap int, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{InlineCapacity: inline, FixedCapacity: fixedCap, Logger: logger}
}

// Run replays sc on the reference slice and the three vectors and compares
// each vector with the reference step by step.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	inline, capacity := r.InlineCapacity, r.FixedCapacity
	if sc.InlineCapacity > 0 {
		inline = sc.InlineCapacity
	}
	if sc.FixedCapacity > 0 {
		capacity = sc.FixedCapacity
	}
	if capacity < len(sc.Initial) {
		return Result{}, fmt.Errorf("%w: %s: fixed capacity %d below initial size %d", ErrInvalid, sc.Name, capacity, len(sc.Initial))
	}

	res := Result{RunID: uuid.NewString(), Scenario: sc.Name, Started: time.Now()}
	var report bytes.Buffer
	targets := []struct {
		name string
		v    vectorx.Vector[int]
	}{
		{TargetSlice, vectorx.NewSlice(sc.Initial...)},
		{TargetBounded, bounded.NewFromSlice(sc.Initial,
			bounded.WithErrorStream(&report),
			bounded.WithExitFunc(func(int) {}),
			bounded.WithLabel(sc.Name))},
		{TargetFixed, fixed.NewFromSlice(capacity, sc.Initial)},
		{TargetHybrid, hybrid.NewFromSlice(inline, sc.Initial)},
	}
	for _, t := range targets {
		tr := replay(t.name, t.v, sc.Steps)
		if t.name == TargetBounded {
			tr.Report = report.String()
		}
		res.Targets = append(res.Targets, tr)
	}
	for i := 1; i < len(res.Targets); i++ {
		res.Targets[i].Mismatches = compare(res.Targets[0], res.Targets[i])
	}

	r.logger().Debug("scenario replayed",
		"run_id", res.RunID,
		"scenario", sc.Name,
		"steps", len(sc.Steps),
		"passed", res.Passed())
	return res, nil
}

// RunAll replays every scenario concurrently. Results keep the order of
// scenarios. Each replay owns its vectors, so nothing is shared between
// goroutines.
func (r *Runner) RunAll(ctx context.Context, scenarios []*Scenario) ([]Result, error) {
	results := make([]Result, len(scenarios))
	g, gCtx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := r.Run(gCtx, sc)
			if err != nil {
				return fmt.Errorf("run %s: %w", sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func replay(name string, v vectorx.Vector[int], steps []Step) TargetResult {
	tr := TargetResult{Target: name, Steps: make([]StepResult, 0, len(steps))}
	for _, st := range steps {
		sr := apply(v, st)
		sr.Len, sr.Cap = v.Len(), v.Cap()
		tr.Steps = append(tr.Steps, sr)
	}
	tr.Final = slices.Collect(v.Values())
	if h, ok := v.(*hybrid.Vector[int]); ok {
		tr.Location = h.Location().String()
	}
	return tr
}

// apply runs one step, turning the panics a vector may raise into a failure
// kind on the result.
func apply(v vectorx.Vector[int], st Step) (sr StepResult) {
	sr = StepResult{Op: st.Op, Offset: -1}
	defer func() {
		if r := recover(); r != nil {
			sr.Failure, sr.Detail = classify(r)
		}
	}()

	switch st.Op {
	case OpPushBack:
		v.PushBack(st.value())
	case OpPushRange:
		for _, x := range st.Values {
			v.PushBack(x)
		}
	case OpPopBack:
		v.PopBack()
	case OpInsert:
		switch {
		case len(st.Values) > 0:
			sr.Offset = v.InsertSlice(st.Pos, st.Values)
		case st.Count > 0:
			sr.Offset = v.InsertN(st.Pos, st.Count, st.value())
		default:
			sr.Offset = v.Insert(st.Pos, st.value())
		}
	case OpErase:
		if st.Last != nil {
			sr.Offset = v.EraseRange(st.Pos, *st.Last)
		} else {
			sr.Offset = v.Erase(st.Pos)
		}
	case OpResize:
		if st.Value != nil {
			v.ResizeFill(st.Size, *st.Value)
		} else {
			v.Resize(st.Size)
		}
	case OpClear:
		v.Clear()
	case OpReserve:
		if r, ok := v.(interface{ Reserve(int) }); ok {
			r.Reserve(st.Size)
		}
	case OpShrinkToFit:
		if s, ok := v.(interface{ ShrinkToFit() }); ok {
			s.ShrinkToFit()
		}
	case OpGet:
		sr.Value = v.Get(st.Pos)
	case OpAt:
		x, err := v.At(st.Pos)
		if err != nil {
			sr.Failure, sr.Detail = classify(err)
			return sr
		}
		sr.Value = x
	}
	return sr
}

func classify(r any) (kind, detail string) {
	if fe, ok := r.(*bounded.FatalError); ok {
		return FailOutOfBounds, fe.Error()
	}
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	var re runtime.Error
	switch {
	case errors.Is(err, primitives.ErrPrecondition):
		return FailPrecondition, err.Error()
	case errors.Is(err, primitives.ErrOutOfRange):
		return FailOutOfRange, err.Error()
	case errors.Is(err, primitives.ErrUnsupported):
		return FailUnsupported, err.Error()
	case errors.As(err, &re):
		// Unchecked Get on a Go slice.
		return FailOutOfBounds, err.Error()
	}
	panic(r)
}

// compare lists where got differs from want. Capacity is not compared since
// it is what the variants differ in.
func compare(want, got TargetResult) []string {
	var out []string
	for i := range min(len(want.Steps), len(got.Steps)) {
		w, g := want.Steps[i], got.Steps[i]
		switch {
		case w.Failure != g.Failure:
			out = append(out, fmt.Sprintf("step %d (%s): failure %q, want %q", i, g.Op, g.Failure, w.Failure))
		case w.Offset != g.Offset:
			out = append(out, fmt.Sprintf("step %d (%s): offset %d, want %d", i, g.Op, g.Offset, w.Offset))
		case w.Value != g.Value:
			out = append(out, fmt.Sprintf("step %d (%s): value %d, want %d", i, g.Op, g.Value, w.Value))
		case w.Len != g.Len:
			out = append(out, fmt.Sprintf("step %d (%s): len %d, want %d", i, g.Op, g.Len, w.Len))
		}
	}
	if !slices.Equal(want.Final, got.Final) {
		out = append(out, fmt.Sprintf("final %v, want %v", got.Final, want.Final))
	}
	return out
}
