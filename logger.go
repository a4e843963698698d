// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var pkglogger atomic.Pointer[zap.Logger]

// logger returns the package logger. It uses a no-op logger by default.
func logger() *zap.Logger {
	if l := pkglogger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger configures the logger used to report garbage collections, resizing
// of the node table, and errors. Events are logged at the Debug level.
func SetLogger(l *zap.Logger) {
	pkglogger.Store(l)
}
