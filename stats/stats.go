// Package stats reports the read family size distribution of a
// deduplicated BAM annotated with RF/FS tags.
package stats

import (
	"fmt"
	"log"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Report prints duplication metrics for input, a BAM produced by a dedup
// run with annotation enabled. When plotFile is non-empty a bar chart of
// the family size distribution is saved there.
func Report(input, plotFile string) {
	reads, _ := sam.GoReadToChan(input)

	// family id -> original family size, one entry per representative pair
	famSize := make(map[string]int)
	var totalReads int
	for r := range reads {
		totalReads++
		id, found, err := sam.QueryTag(r, "RF")
		exception.PanicOnErr(err)
		if !found {
			continue
		}
		size, found, err := sam.QueryTag(r, "FS")
		exception.PanicOnErr(err)
		if !found {
			continue
		}
		n, err := strconv.Atoi(size.(string))
		exception.PanicOnErr(err)
		famSize[id.(string)] = n
	}

	if len(famSize) == 0 {
		log.Fatal("ERROR: no RF/FS tags found. Input must come from a dedup run with annotation enabled.")
	}

	sizes := maps.Values(famSize)
	hist, err := histogram(sizes)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	xs := make([]float64, len(sizes))
	var totalPairs int
	for i, n := range sizes {
		xs[i] = float64(n)
		totalPairs += n
	}

	fmt.Printf("Records:\t%d\n", totalReads)
	fmt.Printf("Families:\t%d\n", len(famSize))
	fmt.Printf("Original Pairs:\t%d\n", totalPairs)
	fmt.Printf("Duplicate Fraction:\t%f\n", 1-float64(len(famSize))/float64(totalPairs))
	fmt.Printf("Mean Family Size:\t%f\n", stat.Mean(xs, nil))
	fmt.Printf("StdDev Family Size:\t%f\n", stat.StdDev(xs, nil))
	fmt.Println("\nFamilies by family size (1 to max):")
	fmt.Println(asciigraph.Plot(hist, asciigraph.Height(10), asciigraph.Precision(0)))

	if plotFile != "" {
		writePlot(hist, plotFile)
	}
}

// histogram counts families by size; index i holds the number of families
// of size i+1. Sizes below 1 come from foreign or corrupted FS tags.
func histogram(sizes []int) ([]float64, error) {
	var maxSize int
	for _, n := range sizes {
		if n < 1 {
			return nil, fmt.Errorf("family size %d out of range, FS tags must be positive", n)
		}
		if n > maxSize {
			maxSize = n
		}
	}
	hist := make([]float64, maxSize)
	for _, n := range sizes {
		hist[n-1]++
	}
	return hist, nil
}

func writePlot(hist []float64, file string) {
	pl := plot.New()
	bars, err := plotter.NewBarChart(plotter.Values(hist), vg.Points(10))
	exception.PanicOnErr(err)
	pl.Add(bars)
	pl.Title.Text = "Read family size distribution"
	pl.X.Label.Text = "Family size - 1"
	pl.Y.Label.Text = "Families"
	err = pl.Save(15*vg.Centimeter, 10*vg.Centimeter, file)
	exception.PanicOnErr(err)
}
