package tag

import (
	"strings"

	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fastq"
	"github.com/vertgenlab/gonomics/sam"
)

// DefaultPrefixLen is the number of leading bases treated as the inline
// molecular barcode when no explicit length is given.
const DefaultPrefixLen int = 3

// Tag is the molecular identifier of a read pair: the barcode prefix of
// each mate, in file order.
type Tag struct {
	Left  string
	Right string
}

func (t Tag) String() string {
	return t.Left + "-" + t.Right
}

// Less orders tags lexicographically on (Left, Right). Used to break
// frequency ties so rankings are identical run to run.
func (t Tag) Less(o Tag) bool {
	if t.Left != o.Left {
		return t.Left < o.Left
	}
	return t.Right < o.Right
}

// Prefix returns the first n bases of seq as a string. Shorter sequences
// return everything they have; an empty sequence returns "*" so a missing
// barcode is visible rather than an empty key.
func Prefix(seq []dna.Base, n int) string {
	if len(seq) == 0 {
		return "*"
	}
	if len(seq) < n {
		n = len(seq)
	}
	return dna.BasesToString(seq[:n])
}

// FromPair derives the pair's tag from the sequence start of each mate.
func FromPair(a, b sam.Sam, prefixLen int) Tag {
	return Tag{Left: Prefix(a.Seq, prefixLen), Right: Prefix(b.Seq, prefixLen)}
}

// Extractor derives a pair's tag from its two mates.
type Extractor func(a, b sam.Sam) Tag

// PrefixExtractor derives tags from the first n bases of each mate.
func PrefixExtractor(n int) Extractor {
	return func(a, b sam.Sam) Tag {
		return FromPair(a, b, n)
	}
}

// FromTags derives the pair's tag from the BF/BR tags recorded by extract.
// Extraction trims the barcode off the sequence, so tagged input must use
// the recorded barcodes rather than the remaining template bases. Both
// mates carry the same tags; the second is consulted only when the first
// has none. Missing tags yield "*".
func FromTags(a, b sam.Sam) Tag {
	forward, reverse := Get(a)
	if forward == "" && reverse == "" {
		forward, reverse = Get(b)
	}
	if forward == "" {
		forward = "*"
	}
	if reverse == "" {
		reverse = "*"
	}
	return Tag{Left: forward, Right: reverse}
}

// Get retrieves barcodes previously recorded in the BF/BR tags of an
// extracted BAM. Missing tags return empty strings.
func Get(s sam.Sam) (forward, reverse string) {
	query, found, err := sam.QueryTag(s, "BF")
	exception.PanicOnErr(err)
	if found {
		forward = query.(string)
	}
	query, found, err = sam.QueryTag(s, "BR")
	exception.PanicOnErr(err)
	if found {
		reverse = query.(string)
	}
	return
}

// SharedSequence is the constant adapter sequence separating the inline
// barcode from template bases in extracted reads.
const SharedSequence string = "AGATGTGTATAAGAGACAG"
const sharedSequenceRevComp string = "CTGTCTCTTATACACATCT"

// Trim removes the barcode and adapter from the start of the read and the
// reverse complement adapter from the end, leaving template bases only.
func Trim(fq *fastq.Fastq) {
	s := dna.BasesToString(fq.Seq)
	var templateStart int
	if idx := strings.LastIndex(s, SharedSequence); idx != -1 {
		templateStart = idx + len(SharedSequence)
	}
	templateEnd := strings.Index(s, sharedSequenceRevComp)
	if templateEnd == -1 {
		templateEnd = len(s)
	}
	if templateStart > templateEnd {
		templateStart = 0
		templateEnd = 0
	}
	fq.Seq = fq.Seq[templateStart:templateEnd]
	fq.Qual = fq.Qual[templateStart:templateEnd]
}

// ExtractBarcode returns the whitelisted barcode preceding the adapter
// sequence, or "*" when no adapter is present or no whitelist entry is
// close enough.
func ExtractBarcode(seq []dna.Base, whitelist map[string]bool) string {
	s := dna.BasesToString(seq)
	idx := strings.Index(s, SharedSequence)
	if idx == -1 {
		return "*"
	}
	return Snap(s[:idx], whitelist)
}

// Snap returns the whitelisted barcode matching s. When an exact match is
// not found, the barcode within Levenshtein distance 2 is returned.
// Returns "*" when nothing on the whitelist is close enough.
func Snap(s string, whitelist map[string]bool) string {
	if whitelist[s] {
		return s
	}
	for bc := range whitelist {
		if levenshtein(s, bc) <= 2 {
			return bc
		}
	}
	return "*"
}

func levenshtein(s1, s2 string) int {
	if s1 == "" || s2 == "" {
		if len(s1) > len(s2) {
			return len(s1)
		}
		return len(s2)
	}
	column := make([]int, len(s1)+1)
	for y := 1; y <= len(s1); y++ {
		column[y] = y
	}
	for x := 1; x <= len(s2); x++ {
		column[0] = x
		lastkey := x - 1
		for y := 1; y <= len(s1); y++ {
			oldkey := column[y]
			var incr int
			if s1[y-1] != s2[x-1] {
				incr = 1
			}
			column[y] = minimum(column[y]+1, column[y-1]+1, lastkey+incr)
			lastkey = oldkey
		}
	}
	return column[len(s1)]
}

func minimum(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
	} else {
		if b < c {
			return b
		}
	}
	return c
}
