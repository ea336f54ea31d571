package main

import (
	"flag"
	"fmt"

	"github.com/dasnellings/bcdedup/stats"
	"github.com/vertgenlab/gonomics/exception"
)

func statsUsage(statsFlags *flag.FlagSet) {
	fmt.Print(
		"stats - report the read family size distribution of a deduped bam\n\n" +
			"Usage:\n" +
			"  bcdedup stats -i deduped.bam\n\n" +
			"Input must come from 'bcdedup dedup -annotate'.\n\n" +
			"Options:\n")
	statsFlags.PrintDefaults()
}

func runStats(args []string) {
	var err error
	statsFlags := flag.NewFlagSet("stats", flag.ExitOnError)

	input := statsFlags.String("i", "", "Input bam file produced by bcdedup dedup -annotate.")
	plotFile := statsFlags.String("plot", "", "Save a bar chart of the family size distribution to this file (png/pdf/svg by extension).")

	err = statsFlags.Parse(args)
	exception.PanicOnErr(err)
	statsFlags.Usage = func() { statsUsage(statsFlags) }

	if *input == "" {
		statsFlags.Usage()
		errExit("\nERROR: must input a bam file with -i")
	}

	stats.Report(*input, *plotFile)
}
