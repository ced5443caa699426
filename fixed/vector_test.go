package fixed_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/vectorx/fixed"
	"github.com/comalice/vectorx/internal/primitives"
	"github.com/comalice/vectorx/testutil"
)

func TestPushSum(t *testing.T) {
	v := fixed.New[int](100)
	for i := range 100 {
		v.PushBack(i)
	}
	sum := 0
	for x := range v.Values() {
		sum += x
	}
	assert.Equal(t, 4950, sum)
	assert.Equal(t, 100, v.Len())
	assert.Equal(t, 100, v.Cap())
	assert.Equal(t, 100, v.MaxSize())

	assert.PanicsWithError(t, "fixed: push back on full vector (capacity 100)", func() { v.PushBack(100) })
	assert.Equal(t, 100, v.Len(), "a failed push leaves the vector unchanged")
}

func TestCapacityNeverChanges(t *testing.T) {
	v := fixed.New[int](8)
	check := func() {
		t.Helper()
		assert.Equal(t, 8, v.Cap())
		assert.LessOrEqual(t, v.Len(), v.Cap())
	}
	v.InsertN(0, 5, 1)
	check()
	v.EraseRange(1, 3)
	check()
	v.Resize(8)
	check()
	v.Clear()
	check()
	assert.Nil(t, v.Data())
}

func TestInsertErase(t *testing.T) {
	v := fixed.Of(10, 1, 2, 5)

	assert.Equal(t, 2, v.Insert(2, 3))
	assert.Equal(t, "{1, 2, 3, 5}", v.String())
	assert.Equal(t, 3, v.InsertN(3, 1, 4))
	assert.Equal(t, 0, v.InsertSlice(0, []int{-1, 0}))
	assert.Equal(t, 7, v.InsertSeq(7, slices.Values([]int{6, 7})))
	assert.Equal(t, "{-1, 0, 1, 2, 3, 4, 5, 6, 7}", v.String())

	assert.Equal(t, 0, v.Erase(0))
	assert.Equal(t, 2, v.EraseRange(2, 4))
	assert.Equal(t, "{0, 1, 4, 5, 6, 7}", v.String())
	assert.Equal(t, 6, v.EraseRange(6, 6))
	assert.Equal(t, 0, v.Front())
	assert.Equal(t, 7, v.Back())
}

func TestInsertAliasing(t *testing.T) {
	v := fixed.Of(8, 1, 2, 3)
	v.InsertSlice(1, v.Data())
	assert.Equal(t, "{1, 1, 2, 3, 2, 3}", v.String())
}

func TestPreconditions(t *testing.T) {
	v := fixed.Of(3, 1, 2)
	tests := []struct {
		name string
		fn   func()
		msg  string
	}{
		{"insert overflow", func() { v.InsertN(0, 2, 0) }, "fixed: insert of 2 would exceed capacity 3 (size 2)"},
		{"insert position", func() { v.Insert(3, 0) }, "fixed: insert position 3 outside [0, 2]"},
		{"erase position", func() { v.Erase(2) }, "fixed: erase position 2 outside [0, 2)"},
		{"erase range", func() { v.EraseRange(1, 3) }, "fixed: erase range [1, 3) outside [0, 2]"},
		{"resize", func() { v.Resize(4) }, "fixed: resize to 4 outside [0, 3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, primitives.ErrPrecondition))
				assert.EqualError(t, err, tt.msg)
			}()
			tt.fn()
		})
	}
	assert.Equal(t, "{1, 2}", v.String())

	empty := fixed.New[int](1)
	assert.Panics(t, func() { empty.PopBack() })
	assert.Panics(t, func() { empty.Front() })
	assert.Panics(t, func() { fixed.New[int](-1) })
	assert.Panics(t, func() { fixed.Of(1, 1, 2) })
}

func TestAt(t *testing.T) {
	v := fixed.Of(4, 10, 20)
	x, err := v.At(1)
	require.NoError(t, err)
	assert.Equal(t, 20, x)

	_, err = v.At(2)
	var re *primitives.RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.Index)
	assert.Equal(t, 2, re.Size)
	assert.ErrorIs(t, err, primitives.ErrOutOfRange)
}

func TestSwapUnsupported(t *testing.T) {
	a, b := fixed.Of(2, 1), fixed.Of(2, 2)
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, primitives.ErrUnsupported)
		assert.Equal(t, "{1}", a.String())
		assert.Equal(t, "{2}", b.String())
	}()
	a.Swap(b)
}

func TestResize(t *testing.T) {
	v := fixed.NewFilled(6, 2, 9)
	v.Resize(4)
	assert.Equal(t, "{9, 9, 0, 0}", v.String())
	v.ResizeFill(6, 1)
	assert.Equal(t, "{9, 9, 0, 0, 1, 1}", v.String())
	v.ResizeFill(1, 5)
	assert.Equal(t, "{9}", v.String())
	assert.Equal(t, "{0, 0}", fixed.NewWithSize[int](3, 2).String())
}

func TestLifecycle(t *testing.T) {
	reg := testutil.NewRegistry()
	alloc := testutil.NewTrackingAllocator[testutil.Tracked]()
	v := fixed.New[testutil.Tracked](16, fixed.WithAllocator[testutil.Tracked](alloc))

	for i := range 5 {
		x := reg.New(i)
		v.PushBack(x)
		x.Release()
	}
	m := reg.New(9)
	v.InsertMove(0, &m)
	assert.Equal(t, testutil.Tracked{}, m)
	v.EmplaceBack(func() testutil.Tracked { return reg.New(10) })
	assert.Equal(t, 7, reg.Live())

	c := v.Clone()
	assert.Equal(t, 14, reg.Live())

	moved := c.Move()
	assert.Zero(t, c.Len())
	assert.Equal(t, 16, moved.Cap())
	assert.Equal(t, 14, reg.Live(), "moves construct nothing")

	v.EraseRange(1, 4)
	v.PopBack()
	v.ResizeFill(5, v.Front())
	assert.Equal(t, []int{9, 3, 4, 9, 9}, testutil.Values(v.Data()))

	v.CopyFrom(moved)
	assert.Equal(t, []int{9, 0, 1, 2, 3, 4, 10}, testutil.Values(v.Data()))
	moved.Destroy()
	c.MoveFrom(v)
	assert.Zero(t, v.Len())
	assert.Equal(t, 7, c.Len())
	c.Destroy()

	assert.Zero(t, reg.Live())
	assert.Empty(t, reg.DoubleReleases())
	stats := alloc.Stats()
	assert.Zero(t, stats.Allocations, "fixed vectors never allocate")
	assert.Zero(t, stats.LiveElements())
}

func TestCopyFromTooLarge(t *testing.T) {
	big := fixed.Of(4, 1, 2, 3)
	small := fixed.New[int](2)
	assert.Panics(t, func() { small.CopyFrom(big) })
	assert.Panics(t, func() { small.MoveFrom(big) })
	assert.Equal(t, 3, big.Len())
}

func TestMoveInIsConstruction(t *testing.T) {
	alloc := testutil.NewTrackingAllocator[string]()
	v := fixed.New[string](2, fixed.WithAllocator[string](alloc))
	a, b := "a", "b"
	v.PushBackMove(&a)
	v.InsertMove(0, &b)
	assert.Empty(t, a)
	assert.Empty(t, b)
	assert.Equal(t, "{b, a}", v.String())
	assert.Equal(t, 2, alloc.Stats().Constructs)

	v.Destroy()
	assert.Zero(t, alloc.Stats().LiveElements())
}

func TestFailedInsertKeepsNoCopies(t *testing.T) {
	reg := testutil.NewRegistry()
	v := fixed.New[testutil.Tracked](2)
	x := reg.New(1)
	v.PushBack(x)
	v.PushBack(x)
	require.Equal(t, 3, reg.Live())

	assert.Panics(t, func() { v.PushBack(x) })
	assert.Panics(t, func() { v.Insert(0, x) })
	assert.Panics(t, func() { v.InsertSlice(0, []testutil.Tracked{x}) })
	assert.Panics(t, func() { v.Insert(5, x) })
	assert.Equal(t, 3, reg.Live())
}
