// Package extract converts raw paired FASTQ into an unmapped BAM with the
// inline barcode of each mate recorded in BF/BR tags, ready for alignment
// and downstream deduplication.
package extract

import (
	"fmt"

	"github.com/dasnellings/bcdedup/tag"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fastq"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

// SAM quality strings start at ascii 33; raw fastq qualities are numeric
const asciiOffset uint8 = 33

// Extract reads paired FASTQ files and writes an unmapped BAM with barcode
// tags. Read pairs where either mate's barcode cannot be identified go to
// missingBcFile when given, and are otherwise discarded.
func Extract(r1, r2, outfile, missingBcFile string, whitelist map[string]bool) {
	readPairs := make(chan fastq.PairedEnd, 1000)
	go fastq.PairedEndToChan(r1, r2, readPairs)

	o := fileio.EasyCreate(outfile)
	bw := sam.NewBamWriter(o, sam.GenerateHeader(nil, nil, sam.Unsorted, sam.None))

	var noBcFile *fileio.EasyWriter
	var noBcWriter *sam.BamWriter
	if missingBcFile != "" {
		noBcFile = fileio.EasyCreate(missingBcFile)
		noBcWriter = sam.NewBamWriter(noBcFile, sam.GenerateHeader(nil, nil, sam.Unsorted, sam.None))
	}

	var s1, s2 sam.Sam
	s1.RName = "*"
	s2.RName = "*"
	s1.RNext = "*"
	s2.RNext = "*"
	var bcFor, bcRev string
	for pair := range readPairs {
		bcFor = tag.ExtractBarcode(pair.Fwd.Seq, whitelist)
		bcRev = tag.ExtractBarcode(pair.Rev.Seq, whitelist)

		if bcFor == "*" || bcRev == "*" {
			if noBcFile != nil {
				fqToSam(&pair.Fwd, &s1, true)
				fqToSam(&pair.Rev, &s2, false)
				s1.Extra = ""
				s2.Extra = ""
				sam.WriteToBamFileHandle(noBcWriter, s1, 0)
				sam.WriteToBamFileHandle(noBcWriter, s2, 0)
			}
			continue
		}

		tag.Trim(&pair.Fwd)
		tag.Trim(&pair.Rev)

		fqToSam(&pair.Fwd, &s1, true)
		fqToSam(&pair.Rev, &s2, false)

		extra := barcodeExtra(bcFor, bcRev)
		s1.Extra = extra
		s2.Extra = extra

		sam.WriteToBamFileHandle(bw, s1, 0)
		sam.WriteToBamFileHandle(bw, s2, 0)
	}

	err := bw.Close()
	exception.PanicOnErr(err)
	err = o.Close()
	exception.PanicOnErr(err)

	if noBcFile != nil {
		err = noBcWriter.Close()
		exception.PanicOnErr(err)
		err = noBcFile.Close()
		exception.PanicOnErr(err)
	}
}

// barcodeExtra records the orientation-independent pair id (AL) plus each
// mate's own barcode (BF/BR). The pair id sorts the two barcodes so both
// orientations of a fragment share an id.
func barcodeExtra(bcFor, bcRev string) string {
	bcId := bcRev + "-" + bcFor
	if bcFor > bcRev {
		bcId = bcFor + "-" + bcRev
	}
	return fmt.Sprintf("AL:Z:%s\tBF:Z:%s\tBR:Z:%s", bcId, bcFor, bcRev)
}

func fqToSam(fq *fastq.Fastq, s *sam.Sam, firstInPair bool) {
	s.QName = fq.Name
	s.Seq = fq.Seq
	for i := range fq.Qual {
		fq.Qual[i] += asciiOffset
	}
	s.Qual = string(fq.Qual)
	if firstInPair {
		s.Flag = 77
	} else {
		s.Flag = 141
	}
}
