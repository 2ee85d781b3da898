package slices

import (
	"fmt"
)

// Chunk splits s into contiguous slices of length chunkLen, the last of which may be shorter.
// Ordering is preserved, such that Flatten(Chunk(s, n)) is equal to s.
// An empty s yields an empty (non-nil) result.
func Chunk[S ~[]E, E any](s S, chunkLen int) []S {
	if chunkLen < 1 {
		panic(fmt.Sprintf("chunkLen is %d but must be at least 1", chunkLen))
	}
	rv := make([]S, 0, (len(s)+chunkLen-1)/chunkLen)
	for i := 0; i < len(s); i += chunkLen {
		end := i + chunkLen
		if end > len(s) {
			end = len(s)
		}
		chunk := make(S, end-i)
		copy(chunk, s[i:end])
		rv = append(rv, chunk)
	}
	return rv
}

// Flatten merges a slice of slices into a single slice.
func Flatten[S ~[]E, E any](s []S) S {
	n := 0
	allNil := true
	for _, si := range s {
		n += len(si)
		allNil = allNil && si == nil
	}
	if allNil {
		return nil
	}
	rv := make(S, 0, n)
	for _, si := range s {
		rv = append(rv, si...)
	}
	return rv
}

// Map returns a new slice obtained by applying fn to each element of list.
func Map[T any, U any](list []T, fn func(val T) U) []U {
	if list == nil {
		return nil
	}
	out := make([]U, len(list))
	for i, val := range list {
		out[i] = fn(val)
	}
	return out
}

// Unique returns a copy of s with duplicate elements removed, keeping only the first occurrence.
func Unique[S ~[]E, E comparable](s S) S {
	if s == nil {
		return nil
	}
	rv := make(S, 0, len(s))
	seen := make(map[E]bool, len(s))
	for _, v := range s {
		if !seen[v] {
			rv = append(rv, v)
			seen[v] = true
		}
	}
	return rv
}

// Subtract returns the elements of list not present in toRemove, in their original order.
func Subtract[T comparable](list []T, toRemove []T) []T {
	if list == nil {
		return nil
	}
	out := make([]T, 0, len(list))

	toRemoveMap := make(map[T]bool, len(toRemove))
	for _, val := range toRemove {
		toRemoveMap[val] = true
	}

	for _, val := range list {
		if !toRemoveMap[val] {
			out = append(out, val)
		}
	}
	return out
}
