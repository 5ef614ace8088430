/*
NAME
  hybriderr.go

DESCRIPTION
  hybriderr.go defines the error kinds surfaced by the hybrid codec
  and a Kind-carrying wrapper, matched by Kind with this package's Is.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package hybriderr defines the error kinds used across the hybrid
// intra/inter YUV codec.
package hybriderr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies a class of codec failure.
type Kind int

const (
	// HeaderMalformed indicates a missing W/H/C token, or an unparsable token.
	HeaderMalformed Kind = iota
	// UnsupportedColorSpace indicates a C value not in {444, 422, 420}.
	UnsupportedColorSpace
	// GolombParamInvalid indicates M is not a positive power of two.
	GolombParamInvalid
	// StreamTruncated indicates a BitStream read reached EOF mid-code.
	StreamTruncated
	// PlaneSizeMismatch indicates a raw file shorter than frames x frame length.
	PlaneSizeMismatch
	// IOError indicates an underlying byte source/sink failure.
	IOError
)

func (k Kind) String() string {
	switch k {
	case HeaderMalformed:
		return "header malformed"
	case UnsupportedColorSpace:
		return "unsupported colour space"
	case GolombParamInvalid:
		return "golomb parameter invalid"
	case StreamTruncated:
		return "stream truncated"
	case PlaneSizeMismatch:
		return "plane size mismatch"
	case IOError:
		return "io error"
	default:
		return "unknown error"
	}
}

// codecError pairs a Kind with a wrapped cause, so callers can match on
// Kind with Is while still retrieving the underlying cause through
// Unwrap.
type codecError struct {
	kind Kind
	msg  string
	err  error
}

func (e *codecError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *codecError) Unwrap() error { return e.err }

// Kind reports the error's Kind.
func (e *codecError) Kind() Kind { return e.kind }

// New returns an error of the given Kind with message msg.
func New(kind Kind, msg string) error {
	return &codecError{kind: kind, msg: msg}
}

// Wrap returns an error of the given Kind, wrapping err with msg as
// additional context. The cause is annotated with a stack trace by
// pkg/errors and is reachable through Unwrap.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &codecError{kind: kind, msg: msg, err: errors.WithStack(err)}
}

// kindHolder is implemented by errors produced in this package.
type kindHolder interface{ Kind() Kind }

// Is reports whether err (or any error it wraps) was constructed with
// the given Kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if kh, ok := err.(kindHolder); ok && kh.Kind() == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
