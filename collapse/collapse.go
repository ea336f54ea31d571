// Package collapse reduces a coordinate group to one representative pair
// per molecular tag. Tags are ranked by popularity, every pair is assigned
// to its best-ranked matching tag, and each resulting duplicate cluster is
// collapsed to a single pair.
package collapse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dasnellings/bcdedup/families"
	"github.com/dasnellings/bcdedup/tag"
)

// Cluster is the subset of a coordinate group assigned to one tag,
// presumed to descend from a single original fragment.
type Cluster struct {
	Tag   tag.Tag
	Pairs []families.Pair
}

// UnassignedTagError reports pairs that matched no ranked tag during
// partitioning.
type UnassignedTagError struct {
	Key   string
	Names []string
}

func (e UnassignedTagError) Error() string {
	return fmt.Sprintf("%d pairs at %s matched no ranked tag: %s", len(e.Names), e.Key, strings.Join(e.Names, ", "))
}

// RankTags counts the distinct tags of a group's pairs and returns them
// from most to least popular. Ties order lexicographically on the tag so
// the ranking is identical run to run and independent of pair order.
func RankTags(g families.Group, ext tag.Extractor) []tag.Tag {
	counts := make(map[tag.Tag]int)
	for _, p := range g.Pairs {
		counts[ext(p.A, p.B)]++
	}
	ranked := make([]tag.Tag, 0, len(counts))
	for t := range counts {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i].Less(ranked[j])
	})
	return ranked
}

// Partition assigns every pair of the group to the first ranked tag where
// either mate's barcode matches the corresponding side of the tag. A match
// on one side alone is sufficient, so a pair with a sequencing error in
// one barcode still joins the cluster its other barcode supports. Pairs
// matching no ranked tag are returned separately rather than dropped.
// Clusters come back in rank order with empty clusters omitted.
func Partition(g families.Group, ranking []tag.Tag, ext tag.Extractor) (clusters []Cluster, unassigned []families.Pair) {
	members := make(map[tag.Tag][]families.Pair)
	for _, p := range g.Pairs {
		t := ext(p.A, p.B)
		assigned := false
		for _, best := range ranking {
			if t.Left == best.Left || t.Right == best.Right {
				members[best] = append(members[best], p)
				assigned = true
				break
			}
		}
		if !assigned {
			unassigned = append(unassigned, p)
		}
	}
	for _, t := range ranking {
		if len(members[t]) > 0 {
			clusters = append(clusters, Cluster{Tag: t, Pairs: members[t]})
		}
	}
	return clusters, unassigned
}

// Select collapses a cluster to one representative pair: the pair with the
// highest summed base quality across both mates, ties broken by read name.
// The pick is a deterministic function of the cluster's members.
func Select(c Cluster) families.Pair {
	best := c.Pairs[0]
	bestQual := pairQual(best)
	for _, p := range c.Pairs[1:] {
		q := pairQual(p)
		if q > bestQual || (q == bestQual && p.Name() < best.Name()) {
			best = p
			bestQual = q
		}
	}
	return best
}

func pairQual(p families.Pair) int {
	var sum int
	for i := 0; i < len(p.A.Qual); i++ {
		sum += int(p.A.Qual[i])
	}
	for i := 0; i < len(p.B.Qual); i++ {
		sum += int(p.B.Qual[i])
	}
	return sum
}
