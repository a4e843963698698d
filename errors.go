// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"errors"
	"fmt"
)

// ErrBinary is the error wrapped by ReadBinary when the input is not a valid
// serialized BDD.
var ErrBinary = errors.New("malformed binary BDD")

var errMemory = errors.New("unable to free memory or resize BDD")

// Error returns the error status of the BDD. We return an empty string if
// there are no errors.
func (b *BDD) Error() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		return ""
	}
	return b.err.Error()
}

// Errored returns true if there was an error during a computation.
func (b *BDD) Errored() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err != nil
}

// seterror sets the error status of b, chaining it with the previous one if
// any, and returns a nil Node so that failing operations can simply return
// its result.
func (b *BDD) seterror(format string, a ...interface{}) Node {
	if b.err != nil {
		b.err = fmt.Errorf(format+"; %w", append(a, b.err)...)
	} else {
		b.err = fmt.Errorf(format, a...)
	}
	logger().Sugar().Debug(b.err)
	return nil
}

// seterrorf is like seterror but returns the new error status.
func (b *BDD) seterrorf(format string, a ...interface{}) error {
	b.seterror(format, a...)
	return b.err
}
