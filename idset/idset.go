// Package idset provides an immutable set of node identifiers.
package idset

import (
	"slices"

	"github.com/goccy/go-json"
)

// Set is an immutable set of IDs. The zero value is an empty set. Methods
// that change membership return a new Set and never modify the receiver.
//
// Members are held as a sorted, duplicate-free slice, so encoders see a
// plain value and ordered output costs nothing.
type Set struct {
	ids []string
}

// Of returns a Set holding ids.
func Of(ids ...string) Set {
	return Set{}.With(ids...)
}

func (s Set) Has(id string) bool {
	_, ok := slices.BinarySearch(s.ids, id)
	return ok
}

func (s Set) Len() int { return len(s.ids) }

func (s Set) Empty() bool { return len(s.ids) == 0 }

// With returns s plus ids. s itself is returned when nothing would change.
func (s Set) With(ids ...string) Set {
	var add []string
	for _, id := range ids {
		if !s.Has(id) {
			add = append(add, id)
		}
	}
	if len(add) == 0 {
		return s
	}

	out := make([]string, 0, len(s.ids)+len(add))
	out = append(append(out, s.ids...), add...)
	slices.Sort(out)
	return Set{ids: slices.Compact(out)}
}

// Without returns s minus ids. s itself is returned when nothing would change.
func (s Set) Without(ids ...string) Set {
	var drop []string
	for _, id := range ids {
		if s.Has(id) {
			drop = append(drop, id)
		}
	}
	if len(drop) == 0 {
		return s
	}

	out := slices.DeleteFunc(slices.Clone(s.ids), func(id string) bool {
		return slices.Contains(drop, id)
	})
	if len(out) == 0 {
		return Set{}
	}
	return Set{ids: out}
}

// Toggle flips the membership of id.
func (s Set) Toggle(id string) Set {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Filter returns the members for which keep reports true.
func (s Set) Filter(keep func(id string) bool) Set {
	var drop []string
	for _, id := range s.ids {
		if !keep(id) {
			drop = append(drop, id)
		}
	}
	return s.Without(drop...)
}

// Sorted returns the members in ascending order. The result is nil for an
// empty set and never aliases the receiver.
func (s Set) Sorted() []string {
	return slices.Clone(s.ids)
}

// Slice returns the members in ascending order as a non-nil slice, the form
// written to JSON documents.
func (s Set) Slice() []string {
	if len(s.ids) == 0 {
		return []string{}
	}
	return slices.Clone(s.ids)
}

func (s Set) Equal(other Set) bool {
	return slices.Equal(s.ids, other.ids)
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = Of(ids...)
	return nil
}
