package collapse

import (
	"testing"

	"github.com/dasnellings/bcdedup/families"
	"github.com/dasnellings/bcdedup/tag"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/sam"
)

func makePair(name, leftSeq, rightSeq string) families.Pair {
	var a, b sam.Sam
	a.QName = name
	b.QName = name
	a.Seq = dna.StringToBases(leftSeq)
	b.Seq = dna.StringToBases(rightSeq)
	return families.Pair{A: a, B: b}
}

func exampleGroup() families.Group {
	return families.Group{Pairs: []families.Pair{
		makePair("p1", "AAACGTACGT", "CCCTGCATGC"),
		makePair("p2", "AAACGTACGT", "CCCTGCATGC"),
		makePair("p3", "AAACGTACGT", "CCCTGCATGC"),
		makePair("p4", "ATTCGTACGT", "CCCTGCATGC"),
	}}
}

func TestRankTags(t *testing.T) {
	ranking := RankTags(exampleGroup(), tag.PrefixExtractor(3))
	want := []tag.Tag{{Left: "AAA", Right: "CCC"}, {Left: "ATT", Right: "CCC"}}
	if len(ranking) != 2 || ranking[0] != want[0] || ranking[1] != want[1] {
		t.Error("unexpected ranking", ranking)
	}
}

func TestRankTagsOrderIndependent(t *testing.T) {
	g := exampleGroup()
	ranking := RankTags(g, tag.PrefixExtractor(3))

	reversed := families.Group{Pairs: make([]families.Pair, len(g.Pairs))}
	for i, p := range g.Pairs {
		reversed.Pairs[len(g.Pairs)-1-i] = p
	}
	permuted := RankTags(reversed, tag.PrefixExtractor(3))
	if len(ranking) != len(permuted) {
		t.Fatal("permuted input changed ranking length")
	}
	for i := range ranking {
		if ranking[i] != permuted[i] {
			t.Error("permuted input changed ranking at", i, ranking[i], permuted[i])
		}
	}
}

func TestRankTagsTieBreak(t *testing.T) {
	g := families.Group{Pairs: []families.Pair{
		makePair("p1", "TTTCGT", "GGGACG"),
		makePair("p2", "AAACGT", "CCCACG"),
	}}
	ranking := RankTags(g, tag.PrefixExtractor(3))
	// equal counts, so lexicographic order decides
	if ranking[0] != (tag.Tag{Left: "AAA", Right: "CCC"}) {
		t.Error("tie should break lexicographically, got", ranking[0])
	}
}

func TestPartition(t *testing.T) {
	g := exampleGroup()
	clusters, unassigned := Partition(g, RankTags(g, tag.PrefixExtractor(3)), tag.PrefixExtractor(3))
	if len(unassigned) != 0 {
		t.Error("no pair should be unassigned", unassigned)
	}
	if len(clusters) != 2 {
		t.Fatal("expected 2 clusters, got", len(clusters))
	}
	// the ATT pair's right barcode CCC matches the top-ranked tag, so the
	// OR rule pulls it into the larger cluster
	if len(clusters[0].Pairs) != 4 {
		t.Error("expected OR-match to give top cluster all 4 pairs, got", len(clusters[0].Pairs))
	}
}

func TestPartitionDistinctRightBarcodes(t *testing.T) {
	g := families.Group{Pairs: []families.Pair{
		makePair("p1", "AAACGT", "CCCACG"),
		makePair("p2", "AAACGT", "CCCACG"),
		makePair("p3", "AAACGT", "CCCACG"),
		makePair("p4", "ATTCGT", "GGGACG"),
	}}
	clusters, unassigned := Partition(g, RankTags(g, tag.PrefixExtractor(3)), tag.PrefixExtractor(3))
	if len(unassigned) != 0 {
		t.Error("no pair should be unassigned", unassigned)
	}
	if len(clusters) != 2 || len(clusters[0].Pairs) != 3 || len(clusters[1].Pairs) != 1 {
		t.Error("expected clusters of 3 and 1")
	}
}

func TestPartitionUnassignedFallback(t *testing.T) {
	g := families.Group{Pairs: []families.Pair{
		makePair("p1", "AAACGT", "CCCACG"),
	}}
	// ranking from elsewhere that matches neither barcode
	ranking := []tag.Tag{{Left: "GGG", Right: "TTT"}}
	clusters, unassigned := Partition(g, ranking, tag.PrefixExtractor(3))
	if len(clusters) != 0 {
		t.Error("no cluster should form")
	}
	if len(unassigned) != 1 || unassigned[0].Name() != "p1" {
		t.Error("pair matching no tag must be reported, not dropped")
	}
}

func makeTaggedPair(name, bcFor, bcRev string) families.Pair {
	// extracted input: barcode trimmed from the sequence, recorded in BF/BR
	p := makePair(name, "TTTTTT", "TTTTTT")
	extra := "BF:Z:" + bcFor + "\tBR:Z:" + bcRev
	p.A.Extra = extra
	p.B.Extra = extra
	return p
}

func TestPartitionRecordedTags(t *testing.T) {
	g := families.Group{Pairs: []families.Pair{
		makeTaggedPair("p1", "AAA", "CCC"),
		makeTaggedPair("p2", "AAA", "CCC"),
		makeTaggedPair("p3", "GGG", "TTT"),
	}}
	ranking := RankTags(g, tag.FromTags)
	if len(ranking) != 2 || ranking[0] != (tag.Tag{Left: "AAA", Right: "CCC"}) {
		t.Fatal("ranking should come from recorded tags, not template bases", ranking)
	}
	clusters, unassigned := Partition(g, ranking, tag.FromTags)
	if len(unassigned) != 0 {
		t.Error("no pair should be unassigned", unassigned)
	}
	if len(clusters) != 2 || len(clusters[0].Pairs) != 2 || len(clusters[1].Pairs) != 1 {
		t.Error("expected clusters of 2 and 1 from recorded tags")
	}
}

func TestSelect(t *testing.T) {
	p1 := makePair("p1", "AAACGT", "CCCACG")
	p2 := makePair("p2", "AAACGT", "CCCACG")
	p1.A.Qual = "IIIIII"
	p1.B.Qual = "IIIIII"
	p2.A.Qual = "######"
	p2.B.Qual = "######"
	c := Cluster{Pairs: []families.Pair{p2, p1}}
	if Select(c).Name() != "p1" {
		t.Error("highest total quality pair should win")
	}
}

func TestSelectTieBreaksByName(t *testing.T) {
	p1 := makePair("b", "AAACGT", "CCCACG")
	p2 := makePair("a", "AAACGT", "CCCACG")
	c := Cluster{Pairs: []families.Pair{p1, p2}}
	if Select(c).Name() != "a" {
		t.Error("quality tie should break on read name")
	}
	// member order must not change the pick
	c = Cluster{Pairs: []families.Pair{p2, p1}}
	if Select(c).Name() != "a" {
		t.Error("pick should be independent of member order")
	}
}

func TestEndToEndGroupCollapse(t *testing.T) {
	g := exampleGroup()
	ranking := RankTags(g, tag.PrefixExtractor(3))
	clusters, _ := Partition(g, ranking, tag.PrefixExtractor(3))
	var representatives int
	for _, c := range clusters {
		Select(c)
		representatives++
	}
	if representatives != len(clusters) {
		t.Error("one representative per cluster")
	}
}
