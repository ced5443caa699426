package primitives

// OpenGap relocates the live range buf[pos:size] n slots to the right,
// walking from the end backward so no live slot is overwritten before it has
// moved. Afterwards buf[pos:pos+n] are empty. Requires size+n <= len(buf).
func OpenGap[T any](a Allocator[T], buf []T, size, pos, n int) {
	if n == 0 {
		return
	}
	for i := size - 1; i >= pos; i-- {
		a.Relocate(&buf[i+n], &buf[i])
	}
}

// CloseGap destroys buf[first:last] and relocates the trailing live elements
// left to fill the hole. It returns the new size.
func CloseGap[T any](a Allocator[T], buf []T, size, first, last int) int {
	n := last - first
	if n == 0 {
		return size
	}
	DestroyRange(a, buf[first:last])
	for i := last; i < size; i++ {
		a.Relocate(&buf[i-n], &buf[i])
	}
	return size - n
}

// MoveConstruct constructs *value into the empty slot and zeroes *value. The
// value enters the container here, so it counts as a construction.
func MoveConstruct[T any](a Allocator[T], slot, value *T) {
	a.Construct(slot, *value)
	var zero T
	*value = zero
}

// DestroyRange destroys every slot of live.
func DestroyRange[T any](a Allocator[T], live []T) {
	for i := range live {
		a.Destroy(&live[i])
	}
}

// RelocateRange moves src[i] into dst[i] for every i in src, in index order.
// dst must have at least len(src) empty slots.
func RelocateRange[T any](a Allocator[T], dst, src []T) {
	for i := range src {
		a.Relocate(&dst[i], &src[i])
	}
}

// CopyRange copy-constructs src[i] into the empty slot dst[i].
func CopyRange[T any](a Allocator[T], dst, src []T) {
	for i := range src {
		a.Construct(&dst[i], Copy(src[i]))
	}
}

// FillRange copy-constructs value into every empty slot of dst.
func FillRange[T any](a Allocator[T], dst []T, value T) {
	for i := range dst {
		a.Construct(&dst[i], Copy(value))
	}
}

// ZeroRange constructs the zero value into every empty slot of dst.
func ZeroRange[T any](a Allocator[T], dst []T) {
	var zero T
	for i := range dst {
		a.Construct(&dst[i], zero)
	}
}
