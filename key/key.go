package key

import (
	"fmt"

	"github.com/vertgenlab/gonomics/sam"
)

// Unmapped is the position recorded for a read or mate without an alignment.
// SAM stores unmapped positions as 0; keys use -1 so unmapped coordinates
// sort before every mapped position instead of colliding with position 0.
// An empty chromosome is likewise coerced to the "*" sentinel SAM uses for
// unmapped records, so every record yields a well-formed key.
const Unmapped int = -1

// Key identifies the genomic coordinates shared by both reads of a pair.
// The two positions are stored min-first so both mates of a pair compute
// an identical key from their own fields.
type Key struct {
	Chrom string
	Start int
	End   int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d-%d", k.Chrom, k.Start, k.End)
}

// FromRecord builds a Key from a single read using only its own position
// and the mate position recorded in the alignment, without access to the
// mate itself. FromRecord of either mate returns the same Key.
func FromRecord(r sam.Sam) Key {
	self := pos(r.Pos)
	mate := pos(r.PNext)
	if self > mate {
		self, mate = mate, self
	}
	return Key{Chrom: chrom(r.RName), Start: self, End: mate}
}

// FromPositions builds a Key directly from a chromosome and two positions
// in either order.
func FromPositions(chr string, a, b int) Key {
	if a > b {
		a, b = b, a
	}
	return Key{Chrom: chrom(chr), Start: a, End: b}
}

func pos(p uint32) int {
	if p == 0 {
		return Unmapped
	}
	return int(p)
}

func chrom(rname string) string {
	if rname == "" {
		return "*"
	}
	return rname
}
