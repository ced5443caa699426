package primitives_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/vectorx/internal/primitives"
	"github.com/comalice/vectorx/testutil"
)

type handle struct {
	buf      []byte
	released *int
}

func (h handle) Clone() handle {
	return handle{buf: slices.Clone(h.buf), released: h.released}
}

func (h handle) Release() { *h.released++ }

func TestCopyUsesCloner(t *testing.T) {
	released := 0
	h := handle{buf: []byte("abc"), released: &released}
	c := primitives.Copy(h)
	c.buf[0] = 'x'
	assert.Equal(t, "abc", string(h.buf))

	assert.Equal(t, 7, primitives.Copy(7))
}

func TestHeapAllocator(t *testing.T) {
	released := 0
	a := primitives.NewHeapAllocator[handle]()
	buf := a.Allocate(3)
	require.Len(t, buf, 3)

	a.Construct(&buf[0], handle{buf: []byte("a"), released: &released})
	a.Relocate(&buf[2], &buf[0])
	assert.Nil(t, buf[0].buf, "relocated-from slot is empty")
	assert.Equal(t, "a", string(buf[2].buf))
	assert.Zero(t, released, "relocation is not a destruction")

	a.Destroy(&buf[2])
	assert.Equal(t, 1, released)
	assert.Nil(t, buf[2].buf)
	a.Deallocate(buf)
}

func TestIndexLimit(t *testing.T) {
	assert.Equal(t, math.MaxInt/8, primitives.IndexLimit[int64]())
	assert.Equal(t, math.MaxInt, primitives.IndexLimit[struct{}]())
	assert.Equal(t, primitives.IndexLimit[[4]int32](), primitives.NewHeapAllocator[[4]int32]().MaxSize())
}

func TestOpenGap(t *testing.T) {
	a := testutil.NewTrackingAllocator[int]()
	buf := []int{1, 2, 3, 4, 0, 0}
	primitives.OpenGap(a, buf, 4, 1, 2)
	assert.Equal(t, []int{1, 0, 0, 2, 3, 4}, buf)
	assert.Equal(t, 3, a.Stats().Relocations)

	// Opening at the end moves nothing.
	buf = []int{1, 2, 0}
	primitives.OpenGap(a, buf, 2, 2, 1)
	assert.Equal(t, []int{1, 2, 0}, buf)
}

func TestCloseGap(t *testing.T) {
	reg := testutil.NewRegistry()
	a := testutil.NewTrackingAllocator[testutil.Tracked]()
	buf := make([]testutil.Tracked, 5)
	for i := range buf {
		a.Construct(&buf[i], reg.New(i))
	}

	size := primitives.CloseGap(a, buf, 5, 1, 3)
	assert.Equal(t, 3, size)
	assert.Equal(t, []int{0, 3, 4}, testutil.Values(buf[:size]))
	assert.Equal(t, testutil.Tracked{}, buf[3])
	assert.Equal(t, testutil.Tracked{}, buf[4])
	assert.Equal(t, 3, reg.Live())
	assert.Equal(t, 2, a.Stats().Destroys)
	assert.Equal(t, 2, a.Stats().Relocations)

	size = primitives.CloseGap(a, buf, size, 1, 1)
	assert.Equal(t, 3, size, "empty range")
}

func TestRanges(t *testing.T) {
	reg := testutil.NewRegistry()
	a := testutil.NewTrackingAllocator[testutil.Tracked]()
	src := []testutil.Tracked{reg.New(1), reg.New(2)}

	dst := make([]testutil.Tracked, 2)
	primitives.CopyRange(a, dst, src)
	assert.Equal(t, 4, reg.Live(), "copies are new elements")

	moved := make([]testutil.Tracked, 2)
	primitives.RelocateRange(a, moved, dst)
	assert.Equal(t, []int{1, 2}, testutil.Values(moved))
	assert.Equal(t, 4, reg.Live())

	fill := make([]testutil.Tracked, 3)
	primitives.FillRange(a, fill, src[0])
	assert.Equal(t, []int{1, 1, 1}, testutil.Values(fill))

	primitives.DestroyRange(a, fill)
	primitives.DestroyRange(a, moved)
	primitives.DestroyRange(a, src)
	assert.Zero(t, reg.Live())
	assert.Empty(t, reg.DoubleReleases())

	zeros := []int{5, 5}
	primitives.ZeroRange(testutil.NewTrackingAllocator[int](), zeros)
	assert.Equal(t, []int{0, 0}, zeros)
}

func TestCheckIndex(t *testing.T) {
	require.NoError(t, primitives.CheckIndex("fixed", 0, 1))

	err := primitives.CheckIndex("fixed", 3, 3)
	require.ErrorIs(t, err, primitives.ErrOutOfRange)
	assert.EqualError(t, err, "fixed: index (3) >= size (3)")

	err = primitives.CheckIndex("hybrid", -1, 2)
	assert.EqualError(t, err, "hybrid: index (-1) < 0 (size 2)")
}

func TestRequire(t *testing.T) {
	assert.NotPanics(t, func() { primitives.Require(true, "fixed", "unused") })

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, primitives.ErrPrecondition))
		assert.EqualError(t, err, "fixed: push back on full vector (capacity 4)")
	}()
	primitives.Require(false, "fixed", "push back on full vector (capacity %d)", 4)
}

func TestUnsupported(t *testing.T) {
	err := primitives.Unsupported("hybrid", "swap")
	assert.ErrorIs(t, err, primitives.ErrUnsupported)
	assert.EqualError(t, err, "hybrid: swap: operation not supported")
}

func TestRender(t *testing.T) {
	assert.Equal(t, "{}", primitives.Render(slices.Values([]int{})))
	assert.Equal(t, "{1, 2, 3}", primitives.Render(slices.Values([]int{1, 2, 3})))
	assert.Equal(t, "{a, b}", primitives.Render(slices.Values([]string{"a", "b"})))
}

func TestMoveConstruct(t *testing.T) {
	a := primitives.NewHeapAllocator[string]()
	buf := a.Allocate(1)
	s := "x"
	primitives.MoveConstruct(a, &buf[0], &s)
	assert.Equal(t, "x", buf[0])
	assert.Empty(t, s)
}
