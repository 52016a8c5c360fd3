// Package fasta extracts the residues of single-record FASTA-style files.
//
// The first line of a file is a header and is never validated. The body is
// every following line, concatenated without separators, up to the first
// line whose length is at most one byte (a blank line, or a lone "\r" in a
// CRLF file) or the end of the file. Nothing after that terminator is read.
package fasta
