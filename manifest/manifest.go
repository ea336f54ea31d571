package manifest

import (
	"fmt"

	"github.com/dasnellings/bcdedup/key"
	"github.com/vertgenlab/gonomics/sam"
)

// MalformedRecordError reports a record missing a field required to place
// it in the manifest. A partial manifest invalidates every downstream
// release decision, so Build fails on the first malformed record.
type MalformedRecordError struct {
	Record int // ordinal of the offending record in the input stream
	Field  string
}

func (e MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record #%d: missing %s", e.Record, e.Field)
}

// Manifest records, for each coordinate key, the read names still owed at
// that key. Entries shrink as pairs complete and are deleted the moment
// they empty; the deletion is the signal that a coordinate group may be
// released.
type Manifest map[key.Key]map[string]struct{}

// Build consumes a full pass over the input and registers every read name
// under its coordinate key. Both mates of a pair register the same name
// under the same key, so each name appears once per key.
func Build(reads <-chan sam.Sam) (Manifest, error) {
	m := make(Manifest)
	var n int
	for r := range reads {
		n++
		if r.QName == "" {
			return nil, MalformedRecordError{Record: n, Field: "read name"}
		}
		if r.RName == "" {
			// unmapped records carry "*"; an empty chrom is a parse problem
			return nil, MalformedRecordError{Record: n, Field: "chrom"}
		}
		k := key.FromRecord(r)
		names := m[k]
		if names == nil {
			names = make(map[string]struct{})
			m[k] = names
		}
		names[r.QName] = struct{}{}
	}
	return m, nil
}

// Retire removes name from the entry for k, deleting the entry when it
// empties. The boolean reports whether the key just completed, i.e. no
// further reads are owed at that coordinate.
func (m Manifest) Retire(k key.Key, name string) bool {
	names, ok := m[k]
	if !ok {
		return false
	}
	delete(names, name)
	if len(names) == 0 {
		delete(m, k)
		return true
	}
	return false
}

// Outstanding returns the number of read names still owed across all keys.
func (m Manifest) Outstanding() int {
	var n int
	for _, names := range m {
		n += len(names)
	}
	return n
}
