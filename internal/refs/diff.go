package refs

import "fmt"

// Update is a reference that moved between two snapshots. Constructed
// only when the before and after revisions differ.
type Update struct {
	Before Reference `json:"before"`
	After  Reference `json:"after"`
}

func (u Update) String() string {
	return u.Before.Hash + " -> " + u.After.Hash
}

// Diff classifies the named references of two snapshots. Every name in
// either snapshot lands in exactly one of deleted, inserted, updated or
// unchanged; unchanged names are omitted. This is a set comparison, no
// ordering is implied.
type Diff struct {
	Deleted  map[string]Reference `json:"deleted"`
	Inserted map[string]Reference `json:"inserted"`
	Updated  map[string]Update    `json:"updated"`
}

// NewDiff compares the before and after snapshots. Pure and total:
// empty inputs produce an empty diff.
func NewDiff(before, after Snapshot) *Diff {
	d := &Diff{
		Deleted:  make(map[string]Reference),
		Inserted: make(map[string]Reference),
		Updated:  make(map[string]Update),
	}

	names := before.Names().Union(after.Names())
	for name := range names.Iter() {
		old, inBefore := before[name]
		cur, inAfter := after[name]
		switch {
		case inBefore && !inAfter:
			d.Deleted[name] = old
		case !inBefore && inAfter:
			d.Inserted[name] = cur
		case !old.Equal(cur):
			d.Updated[name] = Update{Before: old, After: cur}
		}
	}

	return d
}

// Empty reports whether no reference was deleted, inserted or moved.
func (d *Diff) Empty() bool {
	return len(d.Deleted) == 0 && len(d.Inserted) == 0 && len(d.Updated) == 0
}

func (d *Diff) String() string {
	return fmt.Sprintf("Diff(deleted=%d, inserted=%d, updated=%d)",
		len(d.Deleted), len(d.Inserted), len(d.Updated))
}
