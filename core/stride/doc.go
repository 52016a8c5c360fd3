// Package stride encodes residue strings as fixed-width records and reads
// them back.
//
// Format (version 1):
//
//	data:  record N occupies bytes [N*stride, (N+1)*stride). No header,
//	       footer or delimiter. Residues are left-aligned; the rest of the
//	       record is 0x00.
//	index: one decimal true length per line, "\n" terminated, in record
//	       order. Line N belongs to record N.
//
// The stride is not stored in the data file. A reader must be given the same
// value the writer used; the manifest in pkg/api carries it.
package stride
