// Package dedup runs the two-pass streaming deduplication engine over a
// coordinate sorted BAM. The first pass records which read names are owed
// at each coordinate; the second pairs mates, releases each coordinate
// group as soon as the manifest shows it complete, and collapses every
// duplicate cluster to one representative pair.
package dedup

import (
	"fmt"
	"log"

	"github.com/dasnellings/bcdedup/collapse"
	"github.com/dasnellings/bcdedup/families"
	"github.com/dasnellings/bcdedup/manifest"
	"github.com/dasnellings/bcdedup/tag"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

// Settings controls a deduplication run.
type Settings struct {
	Input      string // coordinate sorted BAM, read twice from the start
	Output     string // representative pairs
	Unassigned string // optional sink for pairs matching no ranked tag
	PrefixLen  int    // barcode prefix length
	Tagged     bool   // read barcodes from BF/BR tags written by extract instead of the sequence start
	Annotate   bool   // append RF/FS tags to output records
	AbortOnErr bool   // stop at the first orphan or unassigned pair
	Verbose    int
}

// Metrics summarizes a completed run.
type Metrics struct {
	Pairs      int // completed pairs across all groups
	Groups     int // coordinate groups released
	Clusters   int // duplicate clusters collapsed
	Unassigned int // pairs matching no ranked tag
	Orphans    int // reads that never found a mate
}

// Dedup executes both passes and writes one representative pair per
// duplicate cluster. Input must be a file: the engine traverses it twice
// from the beginning.
func Dedup(s Settings) Metrics {
	var err error
	var m Metrics

	if s.Verbose > 0 {
		log.Println("pass 1: building coordinate manifest")
	}
	reads, header := sam.GoReadToChan(s.Input)
	if header.Metadata.SortOrder[0] != sam.Coordinate {
		log.Fatal("ERROR: Input file must be coordinate sorted.")
	}
	man, err := manifest.Build(reads)
	if err != nil {
		// a partial manifest invalidates every release decision
		log.Fatalf("ERROR: %v", err)
	}
	if s.Verbose > 0 {
		log.Printf("manifest holds %d coordinates, %d reads owed\n", len(man), man.Outstanding())
	}

	if s.Verbose > 0 {
		log.Println("pass 2: assembling and collapsing coordinate groups")
	}
	reads, header = sam.GoReadToChan(s.Input)
	out := fileio.EasyCreate(s.Output)
	bw := sam.NewBamWriter(out, header)

	var leftoverFile *fileio.EasyWriter
	var leftoverWriter *sam.BamWriter
	if s.Unassigned != "" {
		leftoverFile = fileio.EasyCreate(s.Unassigned)
		leftoverWriter = sam.NewBamWriter(leftoverFile, header)
	}

	ext := tag.PrefixExtractor(s.PrefixLen)
	if s.Tagged {
		ext = tag.FromTags
	}

	var famId uint
	asm := families.GoAssemble(reads, man)
	for g := range asm.Groups() {
		m.Groups++
		m.Pairs += len(g.Pairs)
		ranking := collapse.RankTags(g, ext)
		clusters, unassigned := collapse.Partition(g, ranking, ext)

		for _, c := range clusters {
			m.Clusters++
			famId++
			rep := collapse.Select(c)
			if s.Annotate {
				annotate(&rep, famId, len(c.Pairs))
			}
			sam.WriteToBamFileHandle(bw, rep.A, 0)
			sam.WriteToBamFileHandle(bw, rep.B, 0)
		}

		if len(unassigned) > 0 {
			m.Unassigned += len(unassigned)
			names := make([]string, len(unassigned))
			for i, p := range unassigned {
				names[i] = p.Name()
				if leftoverWriter != nil {
					sam.WriteToBamFileHandle(leftoverWriter, p.A, 0)
					sam.WriteToBamFileHandle(leftoverWriter, p.B, 0)
				}
			}
			tagErr := collapse.UnassignedTagError{Key: g.Key.String(), Names: names}
			if s.AbortOnErr {
				log.Fatalf("ERROR: %v", tagErr)
			}
			log.Printf("WARNING: %v\n", tagErr)
		}
	}

	if asmErr := asm.Err(); asmErr != nil {
		if s.AbortOnErr {
			log.Fatalf("ERROR: %v", asmErr)
		}
		unmatched := asmErr.(families.UnmatchedMateError)
		m.Orphans = len(unmatched.Names)
		log.Printf("WARNING: %v\n", asmErr)
	}

	err = bw.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)
	if leftoverFile != nil {
		err = leftoverWriter.Close()
		exception.PanicOnErr(err)
		err = leftoverFile.Close()
		exception.PanicOnErr(err)
	}

	if s.Verbose > 0 {
		log.Printf("%d pairs in %d groups collapsed to %d representatives (%d unassigned, %d orphans)\n",
			m.Pairs, m.Groups, m.Clusters, m.Unassigned, m.Orphans)
	}
	return m
}

func annotate(p *families.Pair, famId uint, size int) {
	addTags(&p.A, famId, size)
	addTags(&p.B, famId, size)
}

func addTags(s *sam.Sam, famId uint, size int) {
	sam.ParseExtra(s)
	if s.Extra != "" {
		s.Extra += "\t"
	}
	s.Extra += fmt.Sprintf("RF:Z:%d\tFS:Z:%d", famId, size)
}
