package chart

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// itemSet is one chart position's set of items: an insertion-ordered,
// key-deduplicated work queue. Its list doubles as the queue the
// predictor/scanner/completer loop drains — items discovered while the set
// is being iterated are appended to the same list and are picked up later
// in the same pass, exactly as required for the completer to close over
// newly-predicted items (§4.3).
type itemSet struct {
	list *arraylist.List
	seen map[ItemKey]struct{}
}

func newItemSet() *itemSet {
	return &itemSet{
		list: arraylist.New(),
		seen: make(map[ItemKey]struct{}),
	}
}

// Add inserts item if its key hasn't been seen in this set before. Returns
// true if the item was newly added.
func (s *itemSet) Add(item Item) bool {
	if _, ok := s.seen[item.ItemKey]; ok {
		return false
	}
	s.seen[item.ItemKey] = struct{}{}
	s.list.Add(item)
	return true
}

// Len returns the number of distinct items ever added to this set.
func (s *itemSet) Len() int {
	return s.list.Size()
}

// At returns the item at position i in insertion order.
func (s *itemSet) At(i int) Item {
	v, _ := s.list.Get(i)
	return v.(Item)
}

// forEachGrowing iterates positions 0..Len()-1, re-reading Len() on every
// step so items appended by fn during iteration (predict/complete adding
// to the same set) are visited too, until the set stops growing.
func (s *itemSet) forEachGrowing(fn func(Item)) {
	i := 0
	for i < s.list.Size() {
		fn(s.At(i))
		i++
	}
}

// items returns a snapshot slice of all items currently in the set, in
// insertion order.
func (s *itemSet) items() []Item {
	out := make([]Item, s.list.Size())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}
