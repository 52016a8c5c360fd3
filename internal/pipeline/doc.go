// Package pipeline runs the conversion: path list → extractor → fixed-width
// encoder → data/index writer, one path at a time, in list order.
//
// It owns every file handle of a run and releases them on all exits. Any
// error aborts the run; outputs written so far are left in place and their
// record counts show how far it got.
package pipeline
