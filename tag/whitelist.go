package tag

// Default whitelist of inline strand barcodes for extraction. Callers with
// a custom barcode set can supply their own map to Snap and ExtractBarcode.
var DefaultWhitelist = map[string]bool{
	"GGCACCGAAAA":   true,
	"CTCGGCGATAAA":  true,
	"GGTGGAGCATAA":  true,
	"CGAGCGCATTAA":  true,
	"AGCCCGGTTATA":  true,
	"TCGGCACCAATA":  true,
	"GCCTGTGGATTA":  true,
	"GCGACCCTTTTA":  true,
	"GCATGCGGTAAT":  true,
	"GCGTTGCCATAT":  true,
	"GGCCGCATTTAT":  true,
	"ACCGCCTCTATT":  true,
	"CCGTGCCAAAAT":  true,
	"TCTCCGGGAATT":  true,
	"CCGCGCTTATTT":  true,
	"CTGAGCTCGTTTT": true,
}
