package kaboom

import (
	"fmt"
	"math/bits"
)

// maxTags is the number of distinct tags an engine can intern.
const maxTags = 256

// TagID is an interned tag.
type TagID uint8

// TagSet is a fixed-size bitset of TagIDs.
type TagSet [maxTags / 64]uint64

func (s *TagSet) Add(id TagID) { s[id>>6] |= 1 << (id & 63) }
func (s *TagSet) Remove(id TagID) { s[id>>6] &^= 1 << (id & 63) }
func (s TagSet) Has(id TagID) bool { return s[id>>6]&(1<<(id&63)) != 0 }
func (s TagSet) Empty() bool { return s == TagSet{} }

// HasAll reports whether every tag in o is also in s.
func (s TagSet) HasAll(o TagSet) bool {
	for i := range s {
		if s[i]&o[i] != o[i] {
			return false
		}
	}
	return true
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// each calls fn for every tag in ascending ID order.
func (s TagSet) each(fn func(TagID)) {
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(TagID(i*64 + b))
			w &^= 1 << b
		}
	}
}

// wildcardTag matches every object.
const wildcardTag = "*"

// tagTable maps tag strings to IDs. It only grows.
type tagTable struct {
	ids   map[string]TagID
	names []string
}

func newTagTable() *tagTable {
	return &tagTable{ids: make(map[string]TagID)}
}

// intern returns the ID for name, allocating one if needed.
func (t *tagTable) intern(name string) (TagID, error) {
	if id, ok := t.ids[name]; ok {
		return id, nil
	}
	if len(t.names) >= maxTags {
		return 0, fmt.Errorf("intern %q: %w", name, ErrTooManyTags)
	}
	id := TagID(len(t.names))
	t.ids[name] = id
	t.names = append(t.names, name)
	return id, nil
}

// lookup returns the ID for name without allocating.
func (t *tagTable) lookup(name string) (TagID, bool) {
	id, ok := t.ids[name]
	return id, ok
}

func (t *tagTable) name(id TagID) string {
	if int(id) < len(t.names) {
		return t.names[id]
	}
	return ""
}

// tagQuery is a compiled tag filter. A query that names a tag never
// interned can match nothing.
type tagQuery struct {
	set        TagSet
	impossible bool
}

// query compiles tags into a tagQuery. The wildcard and empty string are
// ignored, so they match everything.
func (t *tagTable) query(tags ...string) tagQuery {
	var q tagQuery
	for _, name := range tags {
		if name == "" || name == wildcardTag {
			continue
		}
		id, ok := t.lookup(name)
		if !ok {
			q.impossible = true
			continue
		}
		q.set.Add(id)
	}
	return q
}

// internQuery compiles tags for a listener, interning names so that objects
// tagged later still match.
func (t *tagTable) internQuery(tags ...string) (tagQuery, error) {
	var q tagQuery
	for _, name := range tags {
		if name == "" || name == wildcardTag {
			continue
		}
		id, err := t.intern(name)
		if err != nil {
			q.impossible = true
			return q, err
		}
		q.set.Add(id)
	}
	return q, nil
}

func (q tagQuery) matches(s TagSet) bool {
	return !q.impossible && s.HasAll(q.set)
}
