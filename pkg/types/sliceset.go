package types

import "fmt"

// SliceSet is an insertion ordered set for _small_ collections (license candidates, package names).
type SliceSet[T comparable] []T

func NewSet[T comparable](items ...T) SliceSet[T] {
	var s SliceSet[T]
	for _, item := range items {
		s = s.Add(item)
	}
	return s
}

func (s SliceSet[T]) IsEmpty() bool {
	return len(s) == 0
}

func (s SliceSet[T]) IndexOf(needle T) int {
	for i, v := range s {
		if v == needle {
			return i
		}
	}

	return -1
}

func (s SliceSet[T]) Contains(needle T) bool {
	return s.IndexOf(needle) != -1
}

func (s SliceSet[T]) Add(item T) SliceSet[T] {
	if s.Contains(item) {
		return s
	}
	return append(s, item)
}

func (s SliceSet[T]) AddAll(other SliceSet[T]) SliceSet[T] {
	merged := s
	for _, v := range other {
		merged = merged.Add(v)
	}

	return merged
}

// Distinct returns items that are not present in other set, keeping the order of s
func (s SliceSet[T]) Distinct(other SliceSet[T]) SliceSet[T] {
	var d SliceSet[T]
	for _, i := range s {
		if !other.Contains(i) {
			d = append(d, i)
		}
	}

	return d
}

// Strings maps the set to strings, using fmt.Stringer where available
func (s SliceSet[T]) Strings() []string {
	if s == nil {
		return nil
	}

	ss := make([]string, 0, len(s))
	for _, i := range s {
		switch x := any(i).(type) {
		case string:
			ss = append(ss, x)
		case fmt.Stringer:
			ss = append(ss, x.String())
		default:
			ss = append(ss, fmt.Sprintf("%v", i))
		}
	}

	return ss
}
