package joints

import "unsafe"

// arenaAlignment is the byte alignment of every weight arena and of every
// joint group's weight block inside it.
const arenaAlignment = 64

// alignedSlice returns a zeroed slice of n elements whose first element is
// arenaAlignment-byte aligned.
func alignedSlice[T any](n int) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	slack := arenaAlignment / size

	buf := make([]T, n+slack)
	if len(buf) == 0 {
		return buf
	}

	off := 0
	if mis := int(uintptr(unsafe.Pointer(unsafe.SliceData(buf))) % arenaAlignment); mis != 0 {
		off = (arenaAlignment - mis) / size
	}
	return buf[off : off+n : off+n]
}

// alignedElems rounds an element count up so the next group stays aligned.
func alignedElems(n, elemSize int) int {
	return roundUp(n, arenaAlignment/elemSize)
}
