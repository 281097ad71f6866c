package main

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures the engine can run into. The set is
// closed; callers switch on it to decide whether to continue.
type ErrorKind int

const (
	KindGeneralIO ErrorKind = iota
	KindMissingSource
	KindParseFailure
	KindDanglingReference
	KindWriteTargetIsDirectory
	KindDuplicateEntry
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingSource:
		return "missing source"
	case KindParseFailure:
		return "parse failure"
	case KindDanglingReference:
		return "dangling reference"
	case KindWriteTargetIsDirectory:
		return "write target is directory"
	case KindDuplicateEntry:
		return "duplicate entry"
	case KindConfig:
		return "config"
	default:
		return "io"
	}
}

// Error is the structured error returned by the loaders, the index and the
// output writer.
type Error struct {
	Kind    ErrorKind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message}
}

func wrapError(err error, kind ErrorKind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindGeneralIO for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneralIO
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func missingSource(path string) *Error {
	return newError(KindMissingSource, path, "source directory does not exist")
}

func parseFailure(path string, cause error) *Error {
	return wrapError(cause, KindParseFailure, path, "cannot parse")
}

func danglingReference(parentID string) *Error {
	return newError(KindDanglingReference, "", "no entry with id "+parentID)
}

func duplicateEntry(id string) *Error {
	return newError(KindDuplicateEntry, "", "entry "+id+" already indexed")
}

func targetIsDirectory(path string) *Error {
	return newError(KindWriteTargetIsDirectory, path, "output target is a directory")
}

func ioFailure(path string, cause error) *Error {
	return wrapError(cause, KindGeneralIO, path, "i/o failed")
}

func configRequired(field string) *Error {
	return newError(KindConfig, "", "required setting missing: "+field)
}
