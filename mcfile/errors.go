// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is reported when the file ends before the end of a field.
	ErrTruncated = errors.New("unexpected end of file")
	// ErrMarker is reported when the marker of the initial states is not -1.
	ErrMarker = errors.New("unsupported initial state marker")
	// ErrProjection is reported for projections with components out of the
	// vector, or not strictly increasing.
	ErrProjection = errors.New("invalid projection")
	// ErrSize is reported for negative sizes and sizes above the configured
	// bounds.
	ErrSize = errors.New("invalid size")
	// ErrPredicate is reported for predicates that are not valid binary BDD.
	ErrPredicate = errors.New("malformed predicate")
	// ErrEngine is reported when the BDD engine fails to build a node.
	ErrEngine = errors.New("engine failure")
)

// Stage is one of the successive parts of a file.
type Stage int

const (
	StageHeader Stage = iota
	StageInitial
	StageGroups
	StageRelations
	StageDomain
)

var stagenames = [...]string{
	StageHeader:    "header",
	StageInitial:   "initial states",
	StageGroups:    "transition groups",
	StageRelations: "transition relations",
	StageDomain:    "domain",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stagenames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stagenames[s]
}

// FormatError is the type of errors returned when a file cannot be decoded. It
// wraps one of the Err* values of the package.
type FormatError struct {
	Path  string // name of the file, if known
	Stage Stage  // where the failure occurred
	Group int    // index of the transition group, or -1
	Field string // field being decoded
	Err   error
}

func (e *FormatError) Error() string {
	path := e.Path
	if path == "" {
		path = "mcfile"
	}
	where := e.Stage.String()
	if e.Group >= 0 {
		where = fmt.Sprintf("%s, group %d", where, e.Group)
	}
	if e.Field != "" {
		where = fmt.Sprintf("%s, %s", where, e.Field)
	}
	return fmt.Sprintf("%s: %s: %v", path, where, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
