// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var pkglogger atomic.Pointer[zap.Logger]

func logger() *zap.Logger {
	if l := pkglogger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger sets the logger used to trace the decoding of files, at the Debug
// level. Nothing is logged by default.
func SetLogger(l *zap.Logger) {
	pkglogger.Store(l)
}
