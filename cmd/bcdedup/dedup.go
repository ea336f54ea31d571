package main

import (
	"flag"
	"fmt"

	"github.com/dasnellings/bcdedup/dedup"
	"github.com/dasnellings/bcdedup/tag"
	"github.com/vertgenlab/gonomics/exception"
)

func dedupUsage(dedupFlags *flag.FlagSet) {
	fmt.Print(
		"dedup - collapse read pairs sharing coordinates and an inline barcode to one representative pair\n\n" +
			"Usage:\n" +
			"  bcdedup dedup [options] -i input.bam -o output.bam\n\n" +
			"Options:\n")
	dedupFlags.PrintDefaults()
}

func runDedup(args []string) {
	var err error
	dedupFlags := flag.NewFlagSet("dedup", flag.ExitOnError)

	input := dedupFlags.String("i", "", "Input bam file. Must be coordinate sorted and is read twice, so it cannot be a stream.")
	output := dedupFlags.String("o", "stdout", "Output bam file with one representative pair per read family.")
	unassigned := dedupFlags.String("unassigned", "", "Output bam file for pairs that match no ranked barcode tag. When unset such pairs are reported on stderr.")
	prefixLen := dedupFlags.Int("prefix", tag.DefaultPrefixLen, "Number of leading bases treated as the inline barcode.")
	tagged := dedupFlags.Bool("tagged", false, "Read barcodes from the BF/BR tags written by bcdedup extract instead of the first bases of each read. Use for extracted input, where the barcode is trimmed from the sequence.")
	annotate := dedupFlags.Bool("annotate", false, "Append RF (family id) and FS (family size) tags to output records. Required for bcdedup stats. Leaves records unmodified when unset.")
	strict := dedupFlags.Bool("strict", false, "Abort on the first orphan read or unassigned pair instead of reporting and continuing.")
	verbose := dedupFlags.Int("v", 0, "Verbosity level.")

	err = dedupFlags.Parse(args)
	exception.PanicOnErr(err)
	dedupFlags.Usage = func() { dedupUsage(dedupFlags) }

	if *input == "" {
		dedupFlags.Usage()
		errExit("\nERROR: must input a coordinate sorted bam file with -i")
	}

	dedup.Dedup(dedup.Settings{
		Input:      *input,
		Output:     *output,
		Unassigned: *unassigned,
		PrefixLen:  *prefixLen,
		Tagged:     *tagged,
		Annotate:   *annotate,
		AbortOnErr: *strict,
		Verbose:    *verbose,
	})
}
