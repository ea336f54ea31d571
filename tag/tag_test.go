package tag

import (
	"testing"

	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/sam"
)

func TestPrefix(t *testing.T) {
	if Prefix(dna.StringToBases("AATCGG"), 3) != "AAT" {
		t.Error("expected AAT prefix")
	}
	if Prefix(dna.StringToBases("AT"), 3) != "AT" {
		t.Error("short sequence should return all bases")
	}
	if Prefix(nil, 3) != "*" {
		t.Error("empty sequence should return *")
	}
}

func TestFromPair(t *testing.T) {
	var a, b sam.Sam
	a.Seq = dna.StringToBases("AAACGTACGT")
	b.Seq = dna.StringToBases("CCCTGCATGC")
	tg := FromPair(a, b, 3)
	if tg != (Tag{Left: "AAA", Right: "CCC"}) {
		t.Error("unexpected tag", tg)
	}
}

func TestFromTags(t *testing.T) {
	var a, b sam.Sam
	a.Extra = "BF:Z:GGCACCGAAAA\tBR:Z:CTCGGCGATAAA"
	b.Extra = a.Extra
	tg := FromTags(a, b)
	if tg != (Tag{Left: "GGCACCGAAAA", Right: "CTCGGCGATAAA"}) {
		t.Error("unexpected tag from BF/BR", tg)
	}

	// second mate consulted when the first carries no tags
	var c sam.Sam
	tg = FromTags(c, b)
	if tg != (Tag{Left: "GGCACCGAAAA", Right: "CTCGGCGATAAA"}) {
		t.Error("expected fallback to second mate's tags", tg)
	}

	// untagged records stay visible as *
	var d sam.Sam
	if FromTags(c, d) != (Tag{Left: "*", Right: "*"}) {
		t.Error("missing tags should yield *")
	}
}

func TestTagLess(t *testing.T) {
	if !(Tag{"AAA", "CCC"}).Less(Tag{"ATT", "CCC"}) {
		t.Error("AAA-CCC should sort before ATT-CCC")
	}
	if !(Tag{"AAA", "CCC"}).Less(Tag{"AAA", "GGG"}) {
		t.Error("ties on left should fall through to right")
	}
	if (Tag{"AAA", "CCC"}).Less(Tag{"AAA", "CCC"}) {
		t.Error("equal tags should not be Less")
	}
}

func TestSnap(t *testing.T) {
	wl := map[string]bool{"GGCACCGAAAA": true}
	if Snap("GGCACCGAAAA", wl) != "GGCACCGAAAA" {
		t.Error("exact match should return itself")
	}
	if Snap("GGCACCGATAA", wl) != "GGCACCGAAAA" {
		t.Error("single mismatch should snap to whitelist entry")
	}
	if Snap("TTTTTTTTTTT", wl) != "*" {
		t.Error("distant barcode should return *")
	}
}

func TestExtractBarcode(t *testing.T) {
	seq := dna.StringToBases("GGCACCGAAAA" + SharedSequence + "ACGTACGT")
	if ExtractBarcode(seq, DefaultWhitelist) != "GGCACCGAAAA" {
		t.Error("expected barcode preceding adapter")
	}
	if ExtractBarcode(dna.StringToBases("ACGTACGT"), DefaultWhitelist) != "*" {
		t.Error("missing adapter should return *")
	}
}
