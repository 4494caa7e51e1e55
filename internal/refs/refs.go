package refs

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Reference is a named pointer into the origin history, e.g. a branch
// resolved to a revision. Two references are equal iff they resolve to
// the same revision, regardless of how the name is spelled.
type Reference struct {
	Name string `json:"name" yaml:"name"`
	Hash string `json:"hash" yaml:"hash"`
}

// New creates a reference for name resolved to hash.
func New(name, hash string) Reference {
	return Reference{Name: name, Hash: hash}
}

// Equal reports whether both references point at the same revision.
func (r Reference) Equal(other Reference) bool {
	return r.Hash == other.Hash
}

func (r Reference) String() string {
	return r.Hash
}

// Snapshot is a name -> Reference mapping captured at one instant,
// e.g. the visible remote refs before or after a fetch. Treated as
// immutable once captured.
type Snapshot map[string]Reference

// Names returns the set of reference names in the snapshot.
func (s Snapshot) Names() mapset.Set[string] {
	names := mapset.NewSetWithSize[string](len(s))
	for name := range s {
		names.Add(name)
	}
	return names
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for name, ref := range s {
		out[name] = ref
	}
	return out
}

func (s Snapshot) String() string {
	return fmt.Sprintf("Snapshot(%d refs)", len(s))
}
