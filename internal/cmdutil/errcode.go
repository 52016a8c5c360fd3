package cmdutil

import (
	"context"
	"errors"

	"seqstride-core/fasta"
	"seqstride-core/stride"
	"seqstride/internal/config"
	"seqstride/internal/pathlist"
)

// Code is a short error class used in log lines and for exit codes.
type Code string

const (
	CodeUnknown  Code = "unknown"
	CodeConfig   Code = "config"
	CodeInput    Code = "input"
	CodeOverflow Code = "overflow"
	CodeOutput   Code = "output"
	CodeCorrupt  Code = "corrupt"
	CodeRange    Code = "range"
	CodeCancel   Code = "cancel"
)

// Classify maps err to a Code using sentinels only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancel
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, pathlist.ErrListUnreadable),
		errors.Is(err, pathlist.ErrBlankLine),
		errors.Is(err, pathlist.ErrStdinEntry):
		return CodeConfig
	case errors.Is(err, fasta.ErrUnreadable):
		return CodeInput
	case errors.Is(err, stride.ErrOverflow):
		return CodeOverflow
	case errors.Is(err, stride.ErrWrite):
		return CodeOutput
	case errors.Is(err, stride.ErrCorrupt):
		return CodeCorrupt
	case errors.Is(err, stride.ErrRecordRange):
		return CodeRange
	}
	return CodeUnknown
}

// ExitCode: 0 ok, 2 usage/configuration, 3 runtime failure, 130 interrupted.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch Classify(err) {
	case CodeCancel:
		return 130
	case CodeConfig, CodeRange:
		return 2
	}
	return 3
}
