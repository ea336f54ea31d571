package families

import (
	"fmt"
	"strings"

	"github.com/dasnellings/bcdedup/key"
	"github.com/dasnellings/bcdedup/manifest"
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Pair holds the two mates of one sequenced fragment. A is the mate seen
// first in file order, B the second. Identity is the shared read name;
// within a coordinate group names are unique, so two Pairs are the same
// pair exactly when their names match.
type Pair struct {
	A sam.Sam
	B sam.Sam
}

func (p Pair) Name() string {
	return p.A.QName
}

// Group is the set of completed pairs sharing one coordinate key. It is
// emitted exactly once, when the manifest shows no further reads owed at
// the key, and the key is never reopened afterwards.
type Group struct {
	Key   key.Key
	Pairs []Pair
}

// UnmatchedMateError reports read names left waiting for a mate after the
// input stream ended.
type UnmatchedMateError struct {
	Names []string
}

func (e UnmatchedMateError) Error() string {
	return fmt.Sprintf("%d reads never found a mate: %s", len(e.Names), strings.Join(e.Names, ", "))
}

// Assembler pairs mates by name and releases coordinate groups as soon as
// the manifest shows them complete. It is a finite producer: drain Groups
// to completion, then check Err. A fresh Assembler is needed to run again.
type Assembler struct {
	groups chan Group
	err    error
}

// GoAssemble starts the second pass over the input. The manifest must come
// from a completed first pass over the identical stream since release
// decisions read it; groups released against a partial manifest would be
// released early.
func GoAssemble(reads <-chan sam.Sam, man manifest.Manifest) *Assembler {
	a := &Assembler{groups: make(chan Group, 100)}
	go a.assemble(reads, man)
	return a
}

// Groups returns the stream of completed coordinate groups. The channel
// closes when the input is exhausted.
func (a *Assembler) Groups() <-chan Group {
	return a.groups
}

// Err reports reads that never paired. Only valid after Groups is drained.
func (a *Assembler) Err() error {
	return a.err
}

func (a *Assembler) assemble(reads <-chan sam.Sam, man manifest.Manifest) {
	open := make(map[string]sam.Sam)    // first-seen mate by read name
	pending := make(map[key.Key][]Pair) // in-progress groups

	for r := range reads {
		mate, ok := open[r.QName]
		if !ok {
			open[r.QName] = r
			continue
		}
		delete(open, r.QName)
		k := key.FromRecord(r)
		pending[k] = append(pending[k], Pair{A: mate, B: r})
		if man.Retire(k, r.QName) {
			a.groups <- Group{Key: k, Pairs: pending[k]}
			delete(pending, k)
		}
	}

	if len(open) > 0 {
		names := maps.Keys(open)
		slices.Sort(names)
		a.err = UnmatchedMateError{Names: names}
	}
	close(a.groups)
}
