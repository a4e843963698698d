// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reach

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

// SetLogger sets the logger used to report the progress of explorations. Each
// level is logged at the Info level.
func SetLogger(l *zap.Logger) {
	pkglogger.Store(l)
}
