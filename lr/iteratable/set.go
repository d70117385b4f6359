package iteratable

// Keyer is implemented by elements stored in a Set; Key is used for
// deduplication and equality instead of Go's == (our elements, e.g. LR
// items carrying a lookahead slice, are not comparable with ==).
type Keyer interface {
	Key() string
}

// Set is a destructively-updated, iterable collection of Keyer values,
// deduplicated by Key(). The zero value is not usable; construct with New.
type Set struct {
	order []interface{}
	index map[string]int
	cur   int // cursor for IterateOnce/Next/Item
}

// New creates an empty Set, optionally pre-populated with items.
func New(items ...interface{}) *Set {
	s := &Set{index: make(map[string]int)}
	s.Add(items...)
	return s
}

func keyOf(item interface{}) string {
	if k, ok := item.(Keyer); ok {
		return k.Key()
	}
	panic("iteratable: item does not implement Keyer")
}

// Add inserts items, ignoring any whose key is already present.
func (s *Set) Add(items ...interface{}) *Set {
	for _, it := range items {
		k := keyOf(it)
		if _, dup := s.index[k]; dup {
			continue
		}
		s.index[k] = len(s.order)
		s.order = append(s.order, it)
	}
	return s
}

// Remove deletes items from s, if present.
func (s *Set) Remove(items ...interface{}) *Set {
	for _, it := range items {
		k := keyOf(it)
		pos, ok := s.index[k]
		if !ok {
			continue
		}
		s.order = append(s.order[:pos], s.order[pos+1:]...)
		delete(s.index, k)
		for kk, p := range s.index {
			if p > pos {
				s.index[kk] = p - 1
			}
		}
	}
	return s
}

// Contains reports whether an element with the same key as item is in s.
func (s *Set) Contains(item interface{}) bool {
	_, ok := s.index[keyOf(item)]
	return ok
}

// Size returns the number of elements in s.
func (s *Set) Size() int { return len(s.order) }

// Empty reports whether s has no elements.
func (s *Set) Empty() bool { return len(s.order) == 0 }

// Values returns every element, in insertion order. The slice is a copy;
// mutating it does not affect s.
func (s *Set) Values() []interface{} {
	out := make([]interface{}, len(s.order))
	copy(out, s.order)
	return out
}

// Copy returns a shallow copy of s (elements are not cloned).
func (s *Set) Copy() *Set {
	cp := New()
	cp.Add(s.order...)
	return cp
}

// Union destructively adds every element of other into s.
func (s *Set) Union(other *Set) *Set {
	s.Add(other.order...)
	return s
}

// Difference returns a new set holding the elements of s whose key is not
// present in other. Unlike Union, this does not mutate s (there would be
// nothing left to iterate over for the common closure idiom
// `if New := R.Difference(C); !New.Empty() { C.Union(New) }`).
func (s *Set) Difference(other *Set) *Set {
	out := New()
	for _, it := range s.order {
		if !other.Contains(it) {
			out.Add(it)
		}
	}
	return out
}

// Equals reports whether s and other hold the same set of keys.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.index) != len(other.index) {
		return false
	}
	for k := range s.index {
		if _, ok := other.index[k]; !ok {
			return false
		}
	}
	return true
}

// IterateOnce resets the cursor used by Next/Item to the start of the set.
// It supports the closure idiom of iterating a set exactly once even as
// elements are appended to it mid-iteration (a worklist fixed point):
// `C.IterateOnce(); for C.Next() { ... }`.
func (s *Set) IterateOnce() { s.cur = -1 }

// Next advances the cursor, returning false once every element present at
// call time -- including elements appended since IterateOnce -- has been
// visited.
func (s *Set) Next() bool {
	s.cur++
	return s.cur < len(s.order)
}

// Item returns the element at the current cursor position.
func (s *Set) Item() interface{} { return s.order[s.cur] }
