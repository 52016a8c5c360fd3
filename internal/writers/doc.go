// Package writers turns decoded records into output for seqstride-get.
//
// Formats are registered by name (fasta, tsv, raw) in init() and looked up
// through WriteRecord, so the app never switches on format strings itself.
package writers
